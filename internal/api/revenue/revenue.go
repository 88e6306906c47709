package revenue

import (
	dto "gachapon_backend/internal/api/dto/revenue"
	"gachapon_backend/internal/converter"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	revenueserv "gachapon_backend/internal/service/revenue"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.RevenueService
}

type Handler struct {
	serv service.RevenueService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Revenue - состояние счетчиков выручки кабинета
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	rev, err := h.serv.Revenue(r.Context(), cabinetID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRevenueResponse(*rev))
}

// Withdraw - вывести накопленную выручку кабинета владельцу
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	amount, err := h.serv.Withdraw(r.Context(), cabinetID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// BatchWithdraw - вывести выручку сразу из нескольких кабинетов
func (h *Handler) BatchWithdraw(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BatchWithdrawRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := h.serv.BatchWithdraw(r.Context(), payload.CabinetIDs)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// Forecast - прогноз выручки кабинета на заданное число дней
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		http.Error(w, "invalid days", http.StatusBadRequest)
		return
	}

	amount, err := h.serv.Forecast(r.Context(), cabinetID, days)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ForecastResponse{Days: days, Amount: amount})
}

// WithdrawPlatform - вывести комиссию платформы получателю
func (h *Handler) WithdrawPlatform(w http.ResponseWriter, r *http.Request) {
	amount, err := h.serv.WithdrawPlatform(r.Context())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// SetPlatformRecipient - назначить получателя комиссии платформы
func (h *Handler) SetPlatformRecipient(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SetRecipientRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.SetPlatformRecipient(r.Context(), payload.UserID); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func cabinetIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "cabinetID"))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, revenueserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, revenueserv.ErrNotOwner), errors.Is(err, middleware.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, revenueserv.ErrNothingToWithdraw):
		return http.StatusConflict
	case errors.Is(err, revenueserv.ErrBatchSize),
		errors.Is(err, revenueserv.ErrForecastDays):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
