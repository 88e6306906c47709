package converter

import (
	tokendto "gachapon_backend/internal/api/dto/tokenomics"
	"gachapon_backend/internal/model"
)

func ToTokenStatsResponse(stats model.TokenStats) tokendto.StatsResponse {
	return tokendto.StatsResponse{
		Balance:     stats.Balance,
		TotalBurned: stats.TotalBurned,
		BurnCount:   stats.BurnCount,
		OddsBps:     stats.OddsBps,
	}
}

func ToEmissionConfig(req tokendto.EmissionConfigRequest) model.EmissionConfig {
	return model.EmissionConfig{
		BaseRate:    req.BaseRate,
		MaxRate:     req.MaxRate,
		DecayFactor: req.DecayFactor,
		IsActive:    req.IsActive,
	}
}
