package cabinet

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"context"
	"errors"
)

var (
	ErrPaused        = errors.New("platform is paused")
	ErrNotOwner      = errors.New("caller is not the cabinet owner")
	ErrInvalidPrice  = errors.New("play price must be positive")
	ErrInvalidLimit  = errors.New("max items out of range")
	ErrInvalidFee    = errors.New("fee rate out of range")
)

type serv struct {
	repo          repository.CabinetRepository
	escrowRepo    repository.EscrowRepository
	platformState repository.PlatformStateRepository
}

// NewCabinetService Создать сервис конфигурации кабинетов
func NewCabinetService(
	repo repository.CabinetRepository,
	escrowRepo repository.EscrowRepository,
	platformState repository.PlatformStateRepository,
) service.CabinetService {
	return &serv{
		repo:          repo,
		escrowRepo:    escrowRepo,
		platformState: platformState,
	}
}

// requireOwner - проверка, что вызывающий владеет кабинетом
func (s *serv) requireOwner(ctx context.Context, cabinetID int) (*model.Cabinet, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	cab, err := s.repo.GetCabinet(ctx, cabinetID)
	if err != nil {
		return nil, err
	}
	if cab.OwnerID != userID {
		return nil, ErrNotOwner
	}

	return cab, nil
}

// Create - создает кабинет. Владельцем становится вызывающий.
// Создание приходит от коллаборатора идентичности кабинетов, здесь фиксируется
// стартовая конфигурация
func (s *serv) Create(ctx context.Context, req model.CreateCabinet) (int, error) {
	if s.platformState.IsPaused() {
		return 0, ErrPaused
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	if req.PlayPrice <= 0 {
		return 0, ErrInvalidPrice
	}
	if req.MaxItems < 1 || req.MaxItems > model.MaxItemsLimit {
		return 0, ErrInvalidLimit
	}
	if req.FeeRateBps < 0 || req.FeeRateBps > model.MaxFeeRateBps {
		return 0, ErrInvalidFee
	}

	return s.repo.CreateCabinet(ctx, &model.Cabinet{
		OwnerID:    userID,
		PlayPrice:  req.PlayPrice,
		MaxItems:   req.MaxItems,
		FeeRateBps: req.FeeRateBps,
		IsActive:   true,
	})
}

// Get - конфигурация кабинета
func (s *serv) Get(ctx context.Context, cabinetID int) (*model.Cabinet, error) {
	return s.repo.GetCabinet(ctx, cabinetID)
}

// SetPlayPrice - меняет цену игры. Только для владельца
func (s *serv) SetPlayPrice(ctx context.Context, cabinetID int, price int64) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if price <= 0 {
		return ErrInvalidPrice
	}

	if _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return err
	}
	return s.repo.UpdatePlayPrice(ctx, cabinetID, price)
}

// SetMaxItems - меняет вместимость пула. Только для владельца.
// Опускать лимит ниже текущего количества призов нельзя
func (s *serv) SetMaxItems(ctx context.Context, cabinetID int, maxItems int) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if maxItems < 1 || maxItems > model.MaxItemsLimit {
		return ErrInvalidLimit
	}

	if _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return err
	}

	count, err := s.escrowRepo.CountItems(ctx, cabinetID)
	if err != nil {
		return err
	}
	if count > maxItems {
		return ErrInvalidLimit
	}

	return s.repo.UpdateMaxItems(ctx, cabinetID, maxItems)
}

// SetFeeRate - меняет комиссию платформы кабинета. Только для владельца
func (s *serv) SetFeeRate(ctx context.Context, cabinetID int, feeRateBps int) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if feeRateBps < 0 || feeRateBps > model.MaxFeeRateBps {
		return ErrInvalidFee
	}

	if _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return err
	}
	return s.repo.UpdateFeeRate(ctx, cabinetID, feeRateBps)
}

// SetMaintenance - ставит кабинет на обслуживание или снимает с него. Только для владельца
func (s *serv) SetMaintenance(ctx context.Context, cabinetID int, on bool) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	if _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return err
	}
	return s.repo.SetMaintenance(ctx, cabinetID, on)
}

// SetActive - включает или выключает кабинет. Выключенный кабинет не принимает игры.
// Кабинеты не удаляются, только деактивируются
func (s *serv) SetActive(ctx context.Context, cabinetID int, active bool) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	if _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, cabinetID, active)
}
