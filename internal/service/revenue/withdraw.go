package revenue

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"context"
	"errors"
)

// Withdraw - выводит весь накопленный баланс кабинета владельцу и обнуляет его.
// Нулевой баланс отклоняется
func (s *serv) Withdraw(ctx context.Context, cabinetID int) (int64, error) {
	if s.platformState.IsPaused() {
		return 0, ErrPaused
	}

	_, userID, err := s.requireOwner(ctx, cabinetID)
	if err != nil {
		return 0, err
	}

	var withdrawn int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		rev, err := s.repo.GetCabinetRevenue(txCtx, cabinetID)
		if err != nil {
			return err
		}
		if rev.Balance == 0 {
			return ErrNothingToWithdraw
		}

		if err := s.repo.ZeroBalance(txCtx, cabinetID); err != nil {
			return err
		}
		if err := s.creditUser(txCtx, userID, rev.Balance); err != nil {
			return err
		}

		withdrawn = rev.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return withdrawn, nil
}

// BatchWithdraw - пакетный вывод по списку кабинетов, все или ничего.
// Вызывающий должен владеть каждым кабинетом, список от 1 до 10 записей,
// любой нулевой баланс отклоняет весь пакет без частичного эффекта
func (s *serv) BatchWithdraw(ctx context.Context, cabinetIDs []int) (int64, error) {
	if s.platformState.IsPaused() {
		return 0, ErrPaused
	}
	if len(cabinetIDs) == 0 || len(cabinetIDs) > model.MaxBatchWithdraw {
		return 0, ErrBatchSize
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	var total int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		total = 0

		for _, cabinetID := range cabinetIDs {
			cabinet, err := s.cabinetRepo.GetCabinet(txCtx, cabinetID)
			if err != nil {
				return err
			}
			if cabinet.OwnerID != userID {
				return ErrNotOwner
			}

			rev, err := s.repo.GetCabinetRevenue(txCtx, cabinetID)
			if err != nil {
				return err
			}
			if rev.Balance == 0 {
				return ErrNothingToWithdraw
			}

			if err := s.repo.ZeroBalance(txCtx, cabinetID); err != nil {
				return err
			}
			total += rev.Balance
		}

		return s.creditUser(txCtx, userID, total)
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// WithdrawPlatform - выводит накопленную комиссию платформы. Только для админа.
// Зачисляется назначенному получателю, без назначения - вызывающему админу
func (s *serv) WithdrawPlatform(ctx context.Context) (int64, error) {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return 0, err
	}
	if s.platformState.IsPaused() {
		return 0, ErrPaused
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	var withdrawn int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.repo.GetPlatformBalance(txCtx)
		if err != nil {
			return err
		}
		if balance == 0 {
			return ErrNothingToWithdraw
		}

		recipientID, err := s.repo.GetPlatformRecipient(txCtx)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			recipientID = userID
		}

		if err := s.repo.ZeroPlatformBalance(txCtx); err != nil {
			return err
		}
		if err := s.creditUser(txCtx, recipientID, balance); err != nil {
			return err
		}

		withdrawn = balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return withdrawn, nil
}

// SetPlatformRecipient - назначает получателя комиссии платформы. Только для админа
func (s *serv) SetPlatformRecipient(ctx context.Context, userID int) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	return s.repo.SetPlatformRecipient(ctx, userID)
}
