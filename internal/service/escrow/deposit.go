package escrow

import (
	"gachapon_backend/internal/model"
	"context"
)

// Deposit - вносит призы в пул кабинета.
// Кастодия каждого актива переводится в эскроу до добавления записи приза.
// Любая неудача перевода откатывает весь вклад, частичного состояния не остается
func (s *serv) Deposit(ctx context.Context, cabinetID int, items []model.DepositItem) error {
	if s.platformState.IsPaused() {
		return ErrPaused
	}
	if len(items) == 0 {
		return ErrEmptyDeposit
	}

	cabinet, userID, err := s.requireOwner(ctx, cabinetID)
	if err != nil {
		return err
	}

	// Валидация всех заявок до любых мутаций
	for _, item := range items {
		if item.RarityTier < model.MinRarityTier || item.RarityTier > model.MaxRarityTier {
			return ErrInvalidRarity
		}
		if item.Kind != model.AssetKindDistinct && item.Kind != model.AssetKindFungible {
			return ErrInvalidItem
		}
		if item.AssetRef == "" {
			return ErrInvalidItem
		}
		if item.Kind == model.AssetKindFungible && item.UnitsOrID <= 0 {
			return ErrInvalidItem
		}
	}

	from := model.UserPrincipal(userID)
	to := model.CabinetPrincipal(cabinetID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Проверка вместимости внутри транзакции
		count, err := s.escrowRepo.CountItems(txCtx, cabinetID)
		if err != nil {
			return err
		}
		if count+len(items) > cabinet.MaxItems {
			return ErrPoolFull
		}

		for _, item := range items {
			// Сначала кастодия, потом запись
			if err := s.transfer(txCtx, item.Kind, item.AssetRef, item.UnitsOrID, from, to); err != nil {
				return err
			}

			_, err := s.escrowRepo.InsertItem(txCtx, &model.GachaItem{
				CabinetID:  cabinetID,
				Kind:       item.Kind,
				AssetRef:   item.AssetRef,
				UnitsOrID:  item.UnitsOrID,
				RarityTier: item.RarityTier,
				IsActive:   true,
				Label:      item.Label,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}
