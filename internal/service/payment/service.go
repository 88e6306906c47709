package payment

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"context"
	"errors"
)

var (
	ErrPaused        = errors.New("platform is paused")
	ErrInvalidAmount = errors.New("amount must be positive")
)

type serv struct {
	userRepo      repository.UserRepository
	platformState repository.PlatformStateRepository
}

// NewPaymentService Создать сервис баланса игрока
func NewPaymentService(userRepo repository.UserRepository, platformState repository.PlatformStateRepository) service.PaymentService {
	return &serv{userRepo: userRepo, platformState: platformState}
}

// Deposit - пополнение баланса текущего пользователя
func (s *serv) Deposit(ctx context.Context, amount int64) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	if amount <= 0 {
		return ErrInvalidAmount
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return errors.New("user id not found in context")
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateBalance(ctx, userID, balance+amount)
}

// GetBalance - баланс текущего пользователя
func (s *serv) GetBalance(ctx context.Context) (int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	return s.userRepo.GetBalance(ctx, userID)
}
