package repository

import (
	"gachapon_backend/internal/model"
	"context"
	"errors"
)

// Общие ошибки уровня хранилища
var (
	ErrNotFound             = errors.New("record not found")
	ErrCabinetNotRegistered = errors.New("cabinet not registered in token economy")
	ErrInsufficientAssets   = errors.New("holder does not own the asset")
	ErrNoEmissionConfig     = errors.New("emission config not set")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int64, error)
	UpdateBalance(ctx context.Context, id int, amount int64) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	GetUserIDBySessionID(ctx context.Context, sessionID string) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type CabinetRepository interface {
	CreateCabinet(ctx context.Context, cabinet *model.Cabinet) (id int, err error)
	GetCabinet(ctx context.Context, id int) (*model.Cabinet, error)
	UpdatePlayPrice(ctx context.Context, id int, price int64) error
	UpdateMaxItems(ctx context.Context, id int, maxItems int) error
	UpdateFeeRate(ctx context.Context, id int, feeRateBps int) error
	SetMaintenance(ctx context.Context, id int, on bool) error
	SetActive(ctx context.Context, id int, active bool) error
}

type EscrowRepository interface {
	ListItems(ctx context.Context, cabinetID int) ([]model.GachaItem, error)
	CountItems(ctx context.Context, cabinetID int) (int, error)
	InsertItem(ctx context.Context, item *model.GachaItem) (id int, err error)
	DeleteItem(ctx context.Context, itemID int) error
	SetItemActive(ctx context.Context, itemID int, active bool) error
}

// AssetRepository Кастодиальный реестр активов.
// Перевод либо завершается целиком, либо возвращает ошибку без изменения реестра
type AssetRepository interface {
	TransferDistinct(ctx context.Context, assetRef string, tokenID int64, from, to string) error
	TransferFungible(ctx context.Context, assetRef string, amount int64, from, to string) error
	GetFungibleAmount(ctx context.Context, assetRef string, holder string) (int64, error)
}

type RevenueRepository interface {
	GetCabinetRevenue(ctx context.Context, cabinetID int) (*model.CabinetRevenue, error)
	AccruePlay(ctx context.Context, cabinetID int, ownerShare, price int64) error
	ZeroBalance(ctx context.Context, cabinetID int) error

	GetPlatformBalance(ctx context.Context) (int64, error)
	AddPlatformBalance(ctx context.Context, amount int64) error
	ZeroPlatformBalance(ctx context.Context) error
	GetPlatformRecipient(ctx context.Context) (int, error)
	SetPlatformRecipient(ctx context.Context, userID int) error
}

type TokenRepository interface {
	GetTokenBalance(ctx context.Context, userID int) (int64, error)
	AddTokenBalance(ctx context.Context, userID int, delta int64) error

	GetSupply(ctx context.Context) (*model.TokenSupply, error)
	AddMinted(ctx context.Context, amount int64) error
	AddSupplyBurned(ctx context.Context, amount int64) error

	GetBurnStat(ctx context.Context, userID int) (*model.BurnStat, error)
	AddBurnStat(ctx context.Context, userID int, amount int64) error

	GetCabinetTokenConfig(ctx context.Context, cabinetID int) (*model.CabinetTokenConfig, error)
	CreateCabinetTokenConfig(ctx context.Context, cfg *model.CabinetTokenConfig) error
	SetCabinetTokenActive(ctx context.Context, cabinetID int, active bool) error
	AddCabinetEmitted(ctx context.Context, cabinetID int, amount int64) error
	AddCabinetBurned(ctx context.Context, cabinetID int, amount int64) error

	GetEmissionConfig(ctx context.Context) (*model.EmissionConfig, error)
	SetEmissionConfig(ctx context.Context, cfg *model.EmissionConfig) error
}

// RandomStateRepository Глобальный счетчик nonce и список разрешенных потребителей случайности.
// Живет в памяти процесса под мьютексом
type RandomStateRepository interface {
	NextNonce() uint64
	IsConsumer(name string) bool
	AddConsumer(name string)
	RemoveConsumer(name string)
	Consumers() []string
}

// PlatformStateRepository Глобальная пауза и флаг выполняющейся операции
type PlatformStateRepository interface {
	Pause()
	Unpause()
	IsPaused() bool

	TryBeginOperation() bool
	EndOperation()
}

// StatsCache Зеркало счетчиков игр в Redis. Обновляется после коммита, не участвует в транзакции
type StatsCache interface {
	RecordPlay(ctx context.Context, cabinetID int, price int64) error
	GetTotalPlays(ctx context.Context, cabinetID int) (int64, error)
}
