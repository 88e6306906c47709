package revenue

import (
	"gachapon_backend/internal/model"
	"context"
)

// AccruePlay - раскладывает цену игры между кабинетом и платформой.
// platformShare = price * fee / 10000, остаток уходит кабинету.
// Начисление и счетчики игр двигаются в той же транзакции, что и сама игра:
// нет пути, где игра прошла, а выручка не записана
func (s *serv) AccruePlay(ctx context.Context, cabinetID int, price int64, feeRateBps int) error {
	platformShare := price * int64(feeRateBps) / int64(model.MaxFeeRateBps)
	ownerShare := price - platformShare

	if err := s.repo.AccruePlay(ctx, cabinetID, ownerShare, price); err != nil {
		return err
	}

	if platformShare > 0 {
		return s.repo.AddPlatformBalance(ctx, platformShare)
	}
	return nil
}

// Revenue - накопленная выручка и счетчики игр кабинета. Только для владельца
func (s *serv) Revenue(ctx context.Context, cabinetID int) (*model.CabinetRevenue, error) {
	if _, _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return nil, err
	}
	return s.repo.GetCabinetRevenue(ctx, cabinetID)
}
