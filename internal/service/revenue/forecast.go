package revenue

import (
	"gachapon_backend/internal/model"
	"context"
	"time"
)

// Forecast - оценка выручки кабинета на days дней вперед.
// Средний чек по истории, умноженный на оценку игр в день.
// Чисто информационная величина: авторизовывать выводы по ней нельзя
func (s *serv) Forecast(ctx context.Context, cabinetID int, days int) (int64, error) {
	if days < model.MinForecastDays || days > model.MaxForecastDays {
		return 0, ErrForecastDays
	}

	if _, _, err := s.requireOwner(ctx, cabinetID); err != nil {
		return 0, err
	}

	rev, err := s.repo.GetCabinetRevenue(ctx, cabinetID)
	if err != nil {
		return 0, err
	}
	if rev.TotalPlays == 0 {
		return 0, nil
	}

	avgPerPlay := rev.TotalRevenue / rev.TotalPlays

	// Оценка игр в день по возрасту истории, минимум один день
	historyDays := int64(time.Since(rev.FirstPlayAt).Hours() / 24)
	if historyDays < 1 {
		historyDays = 1
	}
	playsPerDay := rev.TotalPlays / historyDays
	if playsPerDay < 1 {
		playsPerDay = 1
	}

	return avgPerPlay * playsPerDay * int64(days), nil
}
