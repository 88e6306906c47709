package token

import (
	"gachapon_backend/internal/model"
	"context"
)

// OddsImprovement - бонус к шансам в базисных пунктах.
// Один пункт за каждые 1000 сожженных единиц, потолок 500 пунктов (5%).
// Чистая функция накопленного сжигания: не убывает, путей сброса нет
func (s *serv) OddsImprovement(ctx context.Context, userID int) (int, error) {
	stat, err := s.repo.GetBurnStat(ctx, userID)
	if err != nil {
		return 0, err
	}

	bps := int(stat.TotalBurned / burnUnitsPerBp)
	if bps > maxOddsBps {
		bps = maxOddsBps
	}

	return bps, nil
}

// Stats - сводка по токену для пользователя
func (s *serv) Stats(ctx context.Context, userID int) (*model.TokenStats, error) {
	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	stat, err := s.repo.GetBurnStat(ctx, userID)
	if err != nil {
		return nil, err
	}

	odds, err := s.OddsImprovement(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.TokenStats{
		Balance:     balance,
		TotalBurned: stat.TotalBurned,
		BurnCount:   stat.BurnCount,
		OddsBps:     odds,
	}, nil
}
