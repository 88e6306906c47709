package cabinet

type CreateRequest struct {
	PlayPrice  int64 `json:"play_price"`
	MaxItems   int   `json:"max_items"`    // 1-10
	FeeRateBps int   `json:"fee_rate_bps"` // 0-10000
}

type CreateResponse struct {
	ID int `json:"id"`
}

type CabinetResponse struct {
	ID            int   `json:"id"`
	OwnerID       int   `json:"owner_id"`
	PlayPrice     int64 `json:"play_price"`
	MaxItems      int   `json:"max_items"`
	FeeRateBps    int   `json:"fee_rate_bps"`
	IsActive      bool  `json:"is_active"`
	InMaintenance bool  `json:"in_maintenance"`
}

type SetPriceRequest struct {
	Price int64 `json:"price"`
}

type SetMaxItemsRequest struct {
	MaxItems int `json:"max_items"`
}

type SetFeeRateRequest struct {
	FeeRateBps int `json:"fee_rate_bps"`
}

type SetFlagRequest struct {
	On bool `json:"on"`
}
