package tokenomics

import (
	dto "gachapon_backend/internal/api/dto/tokenomics"
	"gachapon_backend/internal/converter"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	tokenserv "gachapon_backend/internal/service/token"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
)

type HandlerDeps struct {
	Serv service.TokenService
}

type Handler struct {
	serv service.TokenService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Mint - административный выпуск токена пользователю
func (h *Handler) Mint(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.MintRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.Mint(r.Context(), payload.UserID, payload.Amount); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// BatchMint - выпуск нескольким пользователям, все или никому
func (h *Handler) BatchMint(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BatchMintRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.BatchMint(r.Context(), payload.UserIDs, payload.Amounts); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Burn - сжечь свой токен ради накопленного бонуса к шансам
func (h *Handler) Burn(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BurnRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.BurnForOdds(r.Context(), payload.Amount); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Stats - сводка по токену текущего пользователя
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.serv.Stats(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTokenStatsResponse(*stats))
}

// RegisterCabinet - зарегистрировать кабинет в токен-экономике
func (h *Handler) RegisterCabinet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.RegisterCabinetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.RegisterCabinet(r.Context(), payload.CabinetID); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// SetCabinetActive - включить или выключить кабинет в токен-экономике
func (h *Handler) SetCabinetActive(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SetCabinetActiveRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.SetCabinetActive(r.Context(), payload.CabinetID, payload.Active); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SetEmissionConfig - обновить глобальные границы эмиссии
func (h *Handler) SetEmissionConfig(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.EmissionConfigRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.serv.UpdateEmissionConfig(r.Context(), converter.ToEmissionConfig(payload)); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tokenserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, middleware.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, tokenserv.ErrZeroAmount),
		errors.Is(err, tokenserv.ErrBatchMismatch),
		errors.Is(err, tokenserv.ErrEmissionBounds):
		return http.StatusBadRequest
	case errors.Is(err, tokenserv.ErrSupplyCapExceeded),
		errors.Is(err, tokenserv.ErrInsufficientTokens),
		errors.Is(err, tokenserv.ErrAlreadyRegistered),
		errors.Is(err, tokenserv.ErrCabinetInactive):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrCabinetNotRegistered):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
