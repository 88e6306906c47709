package escrow

import (
	dto "gachapon_backend/internal/api/dto/escrow"
	"gachapon_backend/internal/converter"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	escrowserv "gachapon_backend/internal/service/escrow"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.EscrowService
}

type Handler struct {
	serv service.EscrowService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Deposit - внести призы в пул кабинета
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.serv.Deposit(r.Context(), cabinetID, converter.ToDepositItems(payload.Items))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Withdraw - забрать призы из пула по индексам
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	payload, err := req.Decode[dto.WithdrawRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.serv.Withdraw(r.Context(), cabinetID, payload.Indices)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ToggleActive - включить или выключить приз в розыгрыше
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	payload, err := req.Decode[dto.ToggleRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.serv.ToggleActive(r.Context(), cabinetID, payload.Index)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Items - весь пул кабинета с индексами
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	cabinetID, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	items, err := h.serv.Items(r.Context(), cabinetID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToItemsResponse(items))
}

func cabinetIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "cabinetID"))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, escrowserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, escrowserv.ErrNotOwner), errors.Is(err, middleware.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, escrowserv.ErrPoolFull):
		return http.StatusConflict
	case errors.Is(err, escrowserv.ErrInvalidRarity),
		errors.Is(err, escrowserv.ErrInvalidItem),
		errors.Is(err, escrowserv.ErrEmptyDeposit),
		errors.Is(err, escrowserv.ErrIndexOutOfRange),
		errors.Is(err, escrowserv.ErrDuplicateIndex):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrInsufficientAssets):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
