package play

type PlayRequest struct {
	CabinetID  int   `json:"cabinet_id"`
	Payment    int64 `json:"payment"`     // Оплата, должна покрывать цену игры
	BurnAmount int64 `json:"burn_amount"` // Сколько токена сжечь ради бонуса (0 - без бонуса)
}

type PlayResponse struct {
	Won          bool           `json:"won"`
	Prize        *PrizeResponse `json:"prize,omitempty"`
	BonusPct     int            `json:"bonus_pct"`
	OddsBps      int            `json:"odds_bps"`
	Minted       int64          `json:"minted"`
	Burned       int64          `json:"burned"`
	Balance      int64          `json:"balance"`
	TokenBalance int64          `json:"token_balance"`
}

type PrizeResponse struct {
	Kind       string `json:"kind"` // distinct | fungible
	AssetRef   string `json:"asset_ref"`
	UnitsOrID  int64  `json:"units_or_id"`
	RarityTier int    `json:"rarity_tier"` // 1-5
	Label      string `json:"label"`
}
