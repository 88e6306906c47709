package converter

import (
	escrowdto "gachapon_backend/internal/api/dto/escrow"
	"gachapon_backend/internal/model"
)

func ToDepositItems(items []escrowdto.DepositItem) []model.DepositItem {
	result := make([]model.DepositItem, len(items))
	for i, it := range items {
		result[i] = model.DepositItem{
			Kind:       model.AssetKind(it.Kind),
			AssetRef:   it.AssetRef,
			UnitsOrID:  it.UnitsOrID,
			RarityTier: it.RarityTier,
			Label:      it.Label,
		}
	}

	return result
}

func ToItemsResponse(items []model.GachaItem) escrowdto.ItemsResponse {
	result := make([]escrowdto.ItemResponse, len(items))
	for i, it := range items {
		result[i] = escrowdto.ItemResponse{
			Index:      i,
			Kind:       string(it.Kind),
			AssetRef:   it.AssetRef,
			UnitsOrID:  it.UnitsOrID,
			RarityTier: it.RarityTier,
			IsActive:   it.IsActive,
			Label:      it.Label,
		}
	}

	return escrowdto.ItemsResponse{Items: result}
}
