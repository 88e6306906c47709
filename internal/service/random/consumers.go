package random

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"context"
)

// AddConsumer - добавляет потребителя в список разрешенных. Только для админа
func (s *serv) AddConsumer(ctx context.Context, caller string) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	s.stateRepo.AddConsumer(caller)
	return nil
}

// RemoveConsumer - убирает потребителя из списка разрешенных. Только для админа
func (s *serv) RemoveConsumer(ctx context.Context, caller string) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	s.stateRepo.RemoveConsumer(caller)
	return nil
}

// Consumers - текущий список разрешенных потребителей. Только для админа
func (s *serv) Consumers(ctx context.Context) ([]string, error) {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.stateRepo.Consumers(), nil
}
