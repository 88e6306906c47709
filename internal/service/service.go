package service

import (
	"gachapon_backend/internal/model"
	"context"
)

// PlayService Единственная игровая операция: оплата, розыгрыш, расчет
type PlayService interface {
	Play(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error)
}

// EscrowService Кастодиальное хранение призов кабинета
type EscrowService interface {
	Deposit(ctx context.Context, cabinetID int, items []model.DepositItem) error
	Withdraw(ctx context.Context, cabinetID int, indices []int) error
	ToggleActive(ctx context.Context, cabinetID int, index int) error
	Items(ctx context.Context, cabinetID int) ([]model.GachaItem, error)
	ActiveItems(ctx context.Context, cabinetID int) ([]model.GachaItem, error)

	// ReleaseToPlayer Выдача выигранного приза игроку внутри транзакции игры
	ReleaseToPlayer(ctx context.Context, item model.GachaItem, playerID int) error
}

// TokenService Утилитарный токен: выпуск, сжигание, бонус к шансам
type TokenService interface {
	Mint(ctx context.Context, toUserID int, amount int64) error
	BatchMint(ctx context.Context, toUserIDs []int, amounts []int64) error
	BurnForOdds(ctx context.Context, amount int64) error
	OddsImprovement(ctx context.Context, userID int) (int, error)
	Stats(ctx context.Context, userID int) (*model.TokenStats, error)

	RegisterCabinet(ctx context.Context, cabinetID int) error
	SetCabinetActive(ctx context.Context, cabinetID int, active bool) error
	UpdateEmissionConfig(ctx context.Context, cfg model.EmissionConfig) error

	// Хуки игровой операции, вызываются внутри транзакции игры
	MintForGachaReward(ctx context.Context, playerID int, baseAmount int64, cabinetID int) (int64, error)
	BurnForGachaPlay(ctx context.Context, playerID int, amount int64, cabinetID int) error
}

// RevenueService Выручка кабинетов и платформы
type RevenueService interface {
	AccruePlay(ctx context.Context, cabinetID int, price int64, feeRateBps int) error
	Withdraw(ctx context.Context, cabinetID int) (int64, error)
	BatchWithdraw(ctx context.Context, cabinetIDs []int) (int64, error)
	Forecast(ctx context.Context, cabinetID int, days int) (int64, error)
	Revenue(ctx context.Context, cabinetID int) (*model.CabinetRevenue, error)

	WithdrawPlatform(ctx context.Context) (int64, error)
	SetPlatformRecipient(ctx context.Context, userID int) error
}

// RandomService Источник псевдослучайности с глобальным nonce и списком потребителей
type RandomService interface {
	Generate(requestID uint64, caller string) (uint64, error)
	GenerateInRange(requestID uint64, caller string, min, max uint64) (uint64, error)

	AddConsumer(ctx context.Context, caller string) error
	RemoveConsumer(ctx context.Context, caller string) error
	Consumers(ctx context.Context) ([]string, error)
}

// CabinetService Конфигурация кабинетов
type CabinetService interface {
	Create(ctx context.Context, req model.CreateCabinet) (int, error)
	Get(ctx context.Context, cabinetID int) (*model.Cabinet, error)
	SetPlayPrice(ctx context.Context, cabinetID int, price int64) error
	SetMaxItems(ctx context.Context, cabinetID int, maxItems int) error
	SetFeeRate(ctx context.Context, cabinetID int, feeRateBps int) error
	SetMaintenance(ctx context.Context, cabinetID int, on bool) error
	SetActive(ctx context.Context, cabinetID int, active bool) error
}

// AdminService Глобальная пауза платформы
type AdminService interface {
	Pause(ctx context.Context) error
	Unpause(ctx context.Context) error
	IsPaused(ctx context.Context) bool
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

type PaymentService interface {
	Deposit(ctx context.Context, amount int64) error
	GetBalance(ctx context.Context) (int64, error)
}
