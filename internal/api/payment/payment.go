package payment

import (
	dto "gachapon_backend/internal/api/dto/payment"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/service"
	paymentserv "gachapon_backend/internal/service/payment"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
)

type HandlerDeps struct {
	Serv      service.PaymentService
	TokenServ service.TokenService
}

type Handler struct {
	serv      service.PaymentService
	tokenServ service.TokenService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, tokenServ: deps.TokenServ}
}

// Deposit - пополнение баланса
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.Deposit(r.Context(), payload.Amount); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Wallet - баланс, баланс токена и текущий бонус к шансам одним ответом
func (h *Handler) Wallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := h.serv.GetBalance(r.Context())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	stats, err := h.tokenServ.Stats(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WalletResponse{
		Balance:      balance,
		TokenBalance: stats.Balance,
		OddsBps:      stats.OddsBps,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, paymentserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, paymentserv.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
