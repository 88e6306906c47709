package play

import (
	"gachapon_backend/internal/config"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrPaused              = errors.New("platform is paused")
	ErrBusy                = errors.New("another play is in progress")
	ErrCabinetInactive     = errors.New("cabinet is not active")
	ErrInMaintenance       = errors.New("cabinet is in maintenance")
	ErrInsufficientPayment = errors.New("payment does not cover play price")
	ErrBurnTooLarge        = errors.New("burn amount exceeds 20% of play price")
	ErrInsufficientBalance = errors.New("not enough balance")
)

// RandomConsumerName Имя, под которым игровая операция зарегистрирована
// в списке потребителей источника случайности
const RandomConsumerName = "play_engine"

type serv struct {
	cabinetRepo   repository.CabinetRepository
	userRepo      repository.UserRepository
	escrowServ    service.EscrowService
	tokenServ     service.TokenService
	revenueServ   service.RevenueService
	randomServ    service.RandomService
	platformState repository.PlatformStateRepository
	statsCache    repository.StatsCache
	txManager     trm.Manager
	weights       weightTable
}

// NewPlayService Создать игровой сервис.
// Все побочные эффекты игры идут через публичные контракты остальных сервисов,
// в чужие хранилища игровая операция не лезет
func NewPlayService(
	cabinetRepo repository.CabinetRepository,
	userRepo repository.UserRepository,
	escrowServ service.EscrowService,
	tokenServ service.TokenService,
	revenueServ service.RevenueService,
	randomServ service.RandomService,
	platformState repository.PlatformStateRepository,
	statsCache repository.StatsCache,
	txManager trm.Manager,
	gachaCfg config.GachaConfig,
) service.PlayService {
	return &serv{
		cabinetRepo:   cabinetRepo,
		userRepo:      userRepo,
		escrowServ:    escrowServ,
		tokenServ:     tokenServ,
		revenueServ:   revenueServ,
		randomServ:    randomServ,
		platformState: platformState,
		statsCache:    statsCache,
		txManager:     txManager,
		weights:       newWeightTable(gachaCfg),
	}
}
