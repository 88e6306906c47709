package tokenomics

type MintRequest struct {
	UserID int   `json:"user_id"`
	Amount int64 `json:"amount"`
}

type BatchMintRequest struct {
	UserIDs []int   `json:"user_ids"`
	Amounts []int64 `json:"amounts"`
}

type BurnRequest struct {
	Amount int64 `json:"amount"`
}

type StatsResponse struct {
	Balance     int64 `json:"balance"`
	TotalBurned int64 `json:"total_burned"`
	BurnCount   int64 `json:"burn_count"`
	OddsBps     int   `json:"odds_bps"`
}

type RegisterCabinetRequest struct {
	CabinetID int `json:"cabinet_id"`
}

type SetCabinetActiveRequest struct {
	CabinetID int  `json:"cabinet_id"`
	Active    bool `json:"active"`
}

type EmissionConfigRequest struct {
	BaseRate    int64 `json:"base_rate"`
	MaxRate     int64 `json:"max_rate"`
	DecayFactor int64 `json:"decay_factor"`
	IsActive    bool  `json:"is_active"`
}
