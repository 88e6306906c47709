package converter

import (
	playdto "gachapon_backend/internal/api/dto/play"
	"gachapon_backend/internal/model"
)

func ToPlayRequest(req playdto.PlayRequest) model.PlayRequest {
	return model.PlayRequest{
		CabinetID:  req.CabinetID,
		Payment:    req.Payment,
		BurnAmount: req.BurnAmount,
	}
}

func ToPlayResponse(res model.PlayResult) playdto.PlayResponse {
	out := playdto.PlayResponse{
		Won:          res.Won,
		BonusPct:     res.BonusPct,
		OddsBps:      res.OddsBps,
		Minted:       res.Minted,
		Burned:       res.Burned,
		Balance:      res.Balance,
		TokenBalance: res.TokenBalance,
	}
	if res.Item != nil {
		out.Prize = &playdto.PrizeResponse{
			Kind:       string(res.Item.Kind),
			AssetRef:   res.Item.AssetRef,
			UnitsOrID:  res.Item.UnitsOrID,
			RarityTier: res.Item.RarityTier,
			Label:      res.Item.Label,
		}
	}

	return out
}
