package admin

import (
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/model"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"context"
	"log"
)

type serv struct {
	platformState repository.PlatformStateRepository
}

// NewAdminService Создать сервис глобальной паузы
func NewAdminService(platformState repository.PlatformStateRepository) service.AdminService {
	return &serv{
		platformState: platformState,
	}
}

// Pause - включает глобальную паузу. Только для админа.
// Все мутирующие операции платформы начинают отклоняться
func (s *serv) Pause(ctx context.Context) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}

	s.platformState.Pause()
	log.Println("platform paused")
	return nil
}

// Unpause - снимает глобальную паузу. Только для админа
func (s *serv) Unpause(ctx context.Context) error {
	if err := middleware.RequireRole(ctx, model.RoleAdmin); err != nil {
		return err
	}

	s.platformState.Unpause()
	log.Println("platform unpaused")
	return nil
}

func (s *serv) IsPaused(ctx context.Context) bool {
	return s.platformState.IsPaused()
}
