package revenue

type WithdrawResponse struct {
	Amount int64 `json:"amount"`
}

type BatchWithdrawRequest struct {
	CabinetIDs []int `json:"cabinet_ids"` // От 1 до 10 кабинетов
}

type ForecastResponse struct {
	Days   int   `json:"days"`
	Amount int64 `json:"amount"`
}

type RevenueResponse struct {
	Balance      int64 `json:"balance"`
	TotalPlays   int64 `json:"total_plays"`
	TotalRevenue int64 `json:"total_revenue"`
}

type SetRecipientRequest struct {
	UserID int `json:"user_id"`
}
