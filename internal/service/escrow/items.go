package escrow

import (
	"gachapon_backend/internal/model"
	"context"
)

// ToggleActive - переключает участие приза в розыгрыше.
// Кастодия не двигается, приз просто исключается из пула или возвращается в него
func (s *serv) ToggleActive(ctx context.Context, cabinetID int, index int) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}

	_, _, err := s.requireOwner(ctx, cabinetID)
	if err != nil {
		return err
	}

	items, err := s.escrowRepo.ListItems(ctx, cabinetID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return ErrIndexOutOfRange
	}

	item := items[index]
	return s.escrowRepo.SetItemActive(ctx, item.ID, !item.IsActive)
}

// Items - все призы кабинета, активные и неактивные
func (s *serv) Items(ctx context.Context, cabinetID int) ([]model.GachaItem, error) {
	return s.escrowRepo.ListItems(ctx, cabinetID)
}

// ActiveItems - призы, участвующие в розыгрыше. Читается игровой операцией
func (s *serv) ActiveItems(ctx context.Context, cabinetID int) ([]model.GachaItem, error) {
	items, err := s.escrowRepo.ListItems(ctx, cabinetID)
	if err != nil {
		return nil, err
	}

	active := make([]model.GachaItem, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			active = append(active, item)
		}
	}

	return active, nil
}
