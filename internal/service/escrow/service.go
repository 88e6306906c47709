package escrow

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"context"
	"errors"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrPaused          = errors.New("platform is paused")
	ErrNotOwner        = errors.New("caller is not the cabinet owner")
	ErrPoolFull        = errors.New("cabinet item pool capacity exceeded")
	ErrInvalidRarity   = errors.New("rarity tier out of supported range")
	ErrInvalidItem     = errors.New("invalid item attributes")
	ErrEmptyDeposit    = errors.New("deposit must contain at least one item")
	ErrIndexOutOfRange = errors.New("item index out of range")
	ErrDuplicateIndex  = errors.New("duplicate item index")
)

type serv struct {
	escrowRepo    repository.EscrowRepository
	assetRepo     repository.AssetRepository
	cabinetRepo   repository.CabinetRepository
	platformState repository.PlatformStateRepository
	txManager     trm.Manager
}

// NewEscrowService Создать сервис кастодиального хранения призов
func NewEscrowService(
	escrowRepo repository.EscrowRepository,
	assetRepo repository.AssetRepository,
	cabinetRepo repository.CabinetRepository,
	platformState repository.PlatformStateRepository,
	txManager trm.Manager,
) service.EscrowService {
	return &serv{
		escrowRepo:    escrowRepo,
		assetRepo:     assetRepo,
		cabinetRepo:   cabinetRepo,
		platformState: platformState,
		txManager:     txManager,
	}
}

// requireOwner - проверка, что вызывающий владеет кабинетом.
// Выполняется до любых мутаций
func (s *serv) requireOwner(ctx context.Context, cabinetID int) (*model.Cabinet, int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, 0, errors.New("user id not found in context")
	}

	cabinet, err := s.cabinetRepo.GetCabinet(ctx, cabinetID)
	if err != nil {
		return nil, 0, err
	}
	if cabinet.OwnerID != userID {
		return nil, 0, ErrNotOwner
	}

	return cabinet, userID, nil
}

// transfer - перевод кастодии одного приза между принципалами
func (s *serv) transfer(ctx context.Context, kind model.AssetKind, assetRef string, unitsOrID int64, from, to string) error {
	if kind == model.AssetKindDistinct {
		return s.assetRepo.TransferDistinct(ctx, assetRef, unitsOrID, from, to)
	}
	return s.assetRepo.TransferFungible(ctx, assetRef, unitsOrID, from, to)
}
