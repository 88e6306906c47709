package token

import (
	"gachapon_backend/internal/middleware"
	"context"
	"errors"
)

// BurnForOdds - добровольное сжигание ради накопления бонуса к шансам.
// Уменьшает баланс и выпуск, растит персональную статистику сжиганий
func (s *serv) BurnForOdds(ctx context.Context, amount int64) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return errors.New("user id not found in context")
	}

	if amount <= 0 {
		return ErrZeroAmount
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.repo.GetTokenBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientTokens
		}

		if err := s.repo.AddTokenBalance(txCtx, userID, -amount); err != nil {
			return err
		}
		if err := s.repo.AddSupplyBurned(txCtx, amount); err != nil {
			return err
		}
		return s.repo.AddBurnStat(txCtx, userID, amount)
	})
}
