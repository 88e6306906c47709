package payment

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

type WalletResponse struct {
	Balance      int64 `json:"balance"`
	TokenBalance int64 `json:"token_balance"`
	OddsBps      int   `json:"odds_bps"`
}
