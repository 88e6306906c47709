package token

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"context"
	"errors"
)

// RegisterCabinet - регистрирует кабинет в токен-экономике. Только для админа.
// Повторная регистрация отклоняется
func (s *serv) RegisterCabinet(ctx context.Context, cabinetID int) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	_, err := s.repo.GetCabinetTokenConfig(ctx, cabinetID)
	if err == nil {
		return ErrAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrCabinetNotRegistered) {
		return err
	}

	return s.repo.CreateCabinetTokenConfig(ctx, &model.CabinetTokenConfig{
		CabinetID:       cabinetID,
		IsActive:        true,
		EmissionMultBps: model.DefaultEmissionMultBps,
	})
}

// SetCabinetActive - включает или выключает кабинет в токен-экономике. Только для админа
func (s *serv) SetCabinetActive(ctx context.Context, cabinetID int, active bool) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	return s.repo.SetCabinetTokenActive(ctx, cabinetID, active)
}

// UpdateEmissionConfig - задает глобальные границы эмиссии. Только для админа
func (s *serv) UpdateEmissionConfig(ctx context.Context, cfg model.EmissionConfig) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	if cfg.BaseRate < 0 || cfg.MaxRate < cfg.BaseRate {
		return ErrEmissionBounds
	}

	return s.repo.SetEmissionConfig(ctx, &cfg)
}

// activeCabinetConfig - регистрация кабинета, обязана существовать и быть активной
func (s *serv) activeCabinetConfig(ctx context.Context, cabinetID int) (*model.CabinetTokenConfig, error) {
	cfg, err := s.repo.GetCabinetTokenConfig(ctx, cabinetID)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, ErrCabinetInactive
	}
	return cfg, nil
}

// MintForGachaReward - утешительный выпуск при игре без приза.
// Пока глобальная эмиссия активна, действует ограниченное правило множителя:
// clamp(base * множитель кабинета / 10000, baseRate, maxRate).
// При выключенной эмиссии base проходит как есть (плоское правило 1:1).
// На одной игре срабатывает ровно одно из двух правил.
// Вызывается только из транзакции игры
func (s *serv) MintForGachaReward(ctx context.Context, playerID int, baseAmount int64, cabinetID int) (int64, error) {
	if baseAmount <= 0 {
		return 0, ErrZeroAmount
	}

	cfg, err := s.activeCabinetConfig(ctx, cabinetID)
	if err != nil {
		return 0, err
	}

	emission, err := s.emissionConfig(ctx)
	if err != nil {
		return 0, err
	}

	amount := baseAmount
	if emission.IsActive {
		amount = baseAmount * int64(cfg.EmissionMultBps) / model.DefaultEmissionMultBps
		if amount < emission.BaseRate {
			amount = emission.BaseRate
		}
		if amount > emission.MaxRate {
			amount = emission.MaxRate
		}
	}

	if err := s.checkSupplyCap(ctx, amount); err != nil {
		return 0, err
	}
	if err := s.repo.AddTokenBalance(ctx, playerID, amount); err != nil {
		return 0, err
	}
	if err := s.repo.AddMinted(ctx, amount); err != nil {
		return 0, err
	}
	if err := s.repo.AddCabinetEmitted(ctx, cabinetID, amount); err != nil {
		return 0, err
	}

	return amount, nil
}

// BurnForGachaPlay - сжигание токена при игре ради бонуса к весам.
// Растит счетчик сжиганий кабинета, персональная статистика сжиганий
// (та, что питает OddsImprovement) здесь не трогается.
// Вызывается только из транзакции игры
func (s *serv) BurnForGachaPlay(ctx context.Context, playerID int, amount int64, cabinetID int) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	if _, err := s.activeCabinetConfig(ctx, cabinetID); err != nil {
		return err
	}

	balance, err := s.repo.GetTokenBalance(ctx, playerID)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientTokens
	}

	if err := s.repo.AddTokenBalance(ctx, playerID, -amount); err != nil {
		return err
	}
	if err := s.repo.AddSupplyBurned(ctx, amount); err != nil {
		return err
	}
	return s.repo.AddCabinetBurned(ctx, cabinetID, amount)
}
