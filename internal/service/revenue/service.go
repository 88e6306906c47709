package revenue

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
	ErrPaused            = errors.New("platform is paused")
	ErrNotOwner          = errors.New("caller is not the cabinet owner")
	ErrNothingToWithdraw = errors.New("no accrued balance to withdraw")
	ErrBatchSize         = errors.New("batch must contain between 1 and 10 cabinets")
	ErrForecastDays      = errors.New("forecast days out of range")
)

type serv struct {
	repo          repository.RevenueRepository
	cabinetRepo   repository.CabinetRepository
	userRepo      repository.UserRepository
	platformState repository.PlatformStateRepository
	txManager     trm.Manager
}

// NewRevenueService Создать сервис выручки
func NewRevenueService(
	repo repository.RevenueRepository,
	cabinetRepo repository.CabinetRepository,
	userRepo repository.UserRepository,
	platformState repository.PlatformStateRepository,
	txManager trm.Manager,
) service.RevenueService {
	return &serv{
		repo:          repo,
		cabinetRepo:   cabinetRepo,
		userRepo:      userRepo,
		platformState: platformState,
		txManager:     txManager,
	}
}

// requireOwner - проверка, что вызывающий владеет кабинетом
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

// creditUser - зачисляет сумму на денежный баланс пользователя
func (s *serv) creditUser(ctx context.Context, userID int, amount int64) error {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateBalance(ctx, userID, balance+amount)
}
