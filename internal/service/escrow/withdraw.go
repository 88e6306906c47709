package escrow

import (
	"gachapon_backend/internal/model"
	"context"
)

// Withdraw - возвращает призы владельцу и удаляет их записи.
// Индексы разрешаются по снимку списка на начало операции: удаление одного
// индекса не сдвигает значение следующего в том же вызове
func (s *serv) Withdraw(ctx context.Context, cabinetID int, indices []int) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if len(indices) == 0 {
		return ErrIndexOutOfRange
	}

	_, userID, err := s.requireOwner(ctx, cabinetID)
	if err != nil {
		return err
	}

	from := model.CabinetPrincipal(cabinetID)
	to := model.UserPrincipal(userID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Снимок списка, по которому считаются все индексы вызова
		snapshot, err := s.escrowRepo.ListItems(txCtx, cabinetID)
		if err != nil {
			return err
		}

		seen := make(map[int]struct{}, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(snapshot) {
				return ErrIndexOutOfRange
			}
			if _, dup := seen[idx]; dup {
				return ErrDuplicateIndex
			}
			seen[idx] = struct{}{}
		}

		for _, idx := range indices {
			item := snapshot[idx]

			// Сначала кастодия наружу, потом удаление записи
			if err := s.transfer(txCtx, item.Kind, item.AssetRef, item.UnitsOrID, from, to); err != nil {
				return err
			}
			if err := s.escrowRepo.DeleteItem(txCtx, item.ID); err != nil {
				return err
			}
		}

		return nil
	})
}

// ReleaseToPlayer - выдает выигранный приз игроку.
// Вызывается только из транзакции игры, проверка прав на стороне игровой операции
func (s *serv) ReleaseToPlayer(ctx context.Context, item model.GachaItem, playerID int) error {
	from := model.CabinetPrincipal(item.CabinetID)
	to := model.UserPrincipal(playerID)

	if err := s.transfer(ctx, item.Kind, item.AssetRef, item.UnitsOrID, from, to); err != nil {
		return err
	}

	return s.escrowRepo.DeleteItem(ctx, item.ID)
}
