package converter

import (
	revenuedto "gachapon_backend/internal/api/dto/revenue"
	"gachapon_backend/internal/model"
)

func ToRevenueResponse(rev model.CabinetRevenue) revenuedto.RevenueResponse {
	return revenuedto.RevenueResponse{
		Balance:      rev.Balance,
		TotalPlays:   rev.TotalPlays,
		TotalRevenue: rev.TotalRevenue,
	}
}
