package env

import (
	"gachapon_backend/internal/config"
	"gachapon_backend/internal/model"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Структура файла config.yaml с игровыми числами
type yamlFile struct {
	Gacha struct {
		RarityWeights map[int]int `yaml:"rarity_weights"`
		DefaultWeight int         `yaml:"default_weight"`
	} `yaml:"gacha"`
	Token struct {
		MaxSupply int64 `yaml:"max_supply"`
		Emission  struct {
			BaseRate    int64 `yaml:"base_rate"`
			MaxRate     int64 `yaml:"max_rate"`
			DecayFactor int64 `yaml:"decay_factor"`
			Active      bool  `yaml:"active"`
		} `yaml:"emission"`
	} `yaml:"token"`
}

type gachaConfig struct {
	rarityWeights map[int]int
	defaultWeight int
}

type tokenConfig struct {
	maxSupply int64
	emission  model.EmissionConfig
}

func loadYAML(path string) (*yamlFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &file, nil
}

// NewGachaConfigFromYAML - читает таблицу весов редкости из yaml файла
func NewGachaConfigFromYAML(path string) (config.GachaConfig, error) {
	file, err := loadYAML(path)
	if err != nil {
		return nil, err
	}

	if len(file.Gacha.RarityWeights) == 0 {
		return nil, errors.New("rarity weights not found in config")
	}
	for tier, weight := range file.Gacha.RarityWeights {
		if tier < model.MinRarityTier || tier > model.MaxRarityTier {
			return nil, fmt.Errorf("rarity tier %d out of range", tier)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("rarity tier %d has non-positive weight", tier)
		}
	}
	if file.Gacha.DefaultWeight <= 0 {
		return nil, errors.New("default weight must be positive")
	}

	return &gachaConfig{
		rarityWeights: file.Gacha.RarityWeights,
		defaultWeight: file.Gacha.DefaultWeight,
	}, nil
}

// NewTokenConfigFromYAML - читает лимит выпуска и границы эмиссии из yaml файла
func NewTokenConfigFromYAML(path string) (config.TokenConfig, error) {
	file, err := loadYAML(path)
	if err != nil {
		return nil, err
	}

	if file.Token.MaxSupply <= 0 {
		return nil, errors.New("max supply must be positive")
	}
	if file.Token.Emission.BaseRate < 0 || file.Token.Emission.MaxRate < file.Token.Emission.BaseRate {
		return nil, errors.New("invalid emission bounds")
	}

	return &tokenConfig{
		maxSupply: file.Token.MaxSupply,
		emission: model.EmissionConfig{
			BaseRate:    file.Token.Emission.BaseRate,
			MaxRate:     file.Token.Emission.MaxRate,
			DecayFactor: file.Token.Emission.DecayFactor,
			IsActive:    file.Token.Emission.Active,
		},
	}, nil
}

func (cfg *gachaConfig) RarityWeights() map[int]int {
	return cfg.rarityWeights
}

func (cfg *gachaConfig) DefaultWeight() int {
	return cfg.defaultWeight
}

func (cfg *tokenConfig) MaxSupply() int64 {
	return cfg.maxSupply
}

func (cfg *tokenConfig) EmissionDefaults() model.EmissionConfig {
	return cfg.emission
}
