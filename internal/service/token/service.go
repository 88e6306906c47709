package token

import (
	"gachapon_backend/internal/config"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"context"
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrPaused             = errors.New("platform is paused")
	ErrZeroAmount         = errors.New("amount must be positive")
	ErrSupplyCapExceeded  = errors.New("mint would exceed max supply")
	ErrInsufficientTokens = errors.New("insufficient token balance")
	ErrBatchMismatch      = errors.New("recipients and amounts must match and be nonempty")
	ErrAlreadyRegistered  = errors.New("cabinet already registered")
	ErrCabinetInactive    = errors.New("cabinet token config is inactive")
	ErrEmissionBounds     = errors.New("invalid emission bounds")
)

const (
	// burnUnitsPerBp Сколько сожженных единиц дают один базисный пункт бонуса
	burnUnitsPerBp = 1000
	// maxOddsBps Потолок бонуса к шансам
	maxOddsBps = 500
)

type serv struct {
	repo             repository.TokenRepository
	platformState    repository.PlatformStateRepository
	txManager        trm.Manager
	maxSupply        int64
	emissionDefaults model.EmissionConfig
}

// NewTokenService Создать сервис токен-экономики
func NewTokenService(
	repo repository.TokenRepository,
	platformState repository.PlatformStateRepository,
	txManager trm.Manager,
	cfg config.TokenConfig,
) service.TokenService {
	return &serv{
		repo:             repo,
		platformState:    platformState,
		txManager:        txManager,
		maxSupply:        cfg.MaxSupply(),
		emissionDefaults: cfg.EmissionDefaults(),
	}
}

// emissionConfig - действующие границы эмиссии.
// Пока админ их не задал, действуют значения из config.yaml
func (s *serv) emissionConfig(ctx context.Context) (*model.EmissionConfig, error) {
	cfg, err := s.repo.GetEmissionConfig(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoEmissionConfig) {
			defaults := s.emissionDefaults
			return &defaults, nil
		}
		return nil, err
	}
	return cfg, nil
}

// checkSupplyCap - проверка, что выпуск не превысит лимит
func (s *serv) checkSupplyCap(ctx context.Context, amount int64) error {
	supply, err := s.repo.GetSupply(ctx)
	if err != nil {
		return err
	}
	if supply.TotalMinted+amount > s.maxSupply {
		return ErrSupplyCapExceeded
	}
	return nil
}
