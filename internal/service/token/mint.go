package token

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"context"
)

// Mint - выпускает токен на адрес пользователя. Только для админа
func (s *serv) Mint(ctx context.Context, toUserID int, amount int64) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if amount <= 0 {
		return ErrZeroAmount
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkSupplyCap(txCtx, amount); err != nil {
			return err
		}
		if err := s.repo.AddTokenBalance(txCtx, toUserID, amount); err != nil {
			return err
		}
		return s.repo.AddMinted(txCtx, amount)
	})
}

// BatchMint - пакетный выпуск, все или ничего.
// Длины списков должны совпадать, совокупный выпуск проверяется против лимита
func (s *serv) BatchMint(ctx context.Context, toUserIDs []int, amounts []int64) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if len(toUserIDs) == 0 || len(toUserIDs) != len(amounts) {
		return ErrBatchMismatch
	}

	var total int64
	for _, amount := range amounts {
		if amount <= 0 {
			return ErrZeroAmount
		}
		total += amount
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkSupplyCap(txCtx, total); err != nil {
			return err
		}

		for i, userID := range toUserIDs {
			if err := s.repo.AddTokenBalance(txCtx, userID, amounts[i]); err != nil {
				return err
			}
		}

		return s.repo.AddMinted(txCtx, total)
	})
}
