package converter

import (
	cabinetdto "gachapon_backend/internal/api/dto/cabinet"
	"gachapon_backend/internal/model"
)

func ToCreateCabinet(req cabinetdto.CreateRequest) model.CreateCabinet {
	return model.CreateCabinet{
		PlayPrice:  req.PlayPrice,
		MaxItems:   req.MaxItems,
		FeeRateBps: req.FeeRateBps,
	}
}

func ToCabinetResponse(c model.Cabinet) cabinetdto.CabinetResponse {
	return cabinetdto.CabinetResponse{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		PlayPrice:     c.PlayPrice,
		MaxItems:      c.MaxItems,
		FeeRateBps:    c.FeeRateBps,
		IsActive:      c.IsActive,
		InMaintenance: c.InMaintenance,
	}
}
