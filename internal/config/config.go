package config

import (
	"time"

	"gachapon_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type GachaConfig interface {
	RarityWeights() map[int]int
	DefaultWeight() int
}

type TokenConfig interface {
	MaxSupply() int64
	EmissionDefaults() model.EmissionConfig
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
