package escrow

type DepositRequest struct {
	Items []DepositItem `json:"items"`
}

type DepositItem struct {
	Kind       string `json:"kind"` // distinct | fungible
	AssetRef   string `json:"asset_ref"`
	UnitsOrID  int64  `json:"units_or_id"`
	RarityTier int    `json:"rarity_tier"` // 1-5
	Label      string `json:"label"`
}

type WithdrawRequest struct {
	Indices []int `json:"indices"` // Позиции в текущем снимке пула
}

type ToggleRequest struct {
	Index int `json:"index"`
}

type ItemResponse struct {
	Index      int    `json:"index"`
	Kind       string `json:"kind"`
	AssetRef   string `json:"asset_ref"`
	UnitsOrID  int64  `json:"units_or_id"`
	RarityTier int    `json:"rarity_tier"`
	IsActive   bool   `json:"is_active"`
	Label      string `json:"label"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
