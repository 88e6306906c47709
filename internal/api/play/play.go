package play

import (
	dto "gachapon_backend/internal/api/dto/play"
	"gachapon_backend/internal/converter"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	playserv "gachapon_backend/internal/service/play"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
)

type HandlerDeps struct {
	Serv service.PlayService
}

type Handler struct {
	serv service.PlayService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Play - одна игра в кабинете
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Play(r.Context(), converter.ToPlayRequest(payload))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlayResponse(*result))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, playserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, playserv.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, playserv.ErrCabinetInactive),
		errors.Is(err, playserv.ErrInMaintenance):
		return http.StatusConflict
	case errors.Is(err, playserv.ErrInsufficientPayment),
		errors.Is(err, playserv.ErrBurnTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, playserv.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
