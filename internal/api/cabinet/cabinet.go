package cabinet

import (
	dto "gachapon_backend/internal/api/dto/cabinet"
	"gachapon_backend/internal/converter"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	cabinetserv "gachapon_backend/internal/service/cabinet"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.CabinetService
}

type Handler struct {
	serv service.CabinetService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Create - создать кабинет, вызывающий становится владельцем
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.serv.Create(r.Context(), converter.ToCreateCabinet(payload))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CreateResponse{ID: id})
}

// Get - конфигурация кабинета
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	cab, err := h.serv.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCabinetResponse(*cab))
}

// SetPrice - изменить цену игры
func (h *Handler) SetPrice(w http.ResponseWriter, r *http.Request) {
	h.setter(w, r, func(r *http.Request, id int) error {
		payload, err := req.Decode[dto.SetPriceRequest](r.Body)
		if err != nil {
			return err
		}
		return h.serv.SetPlayPrice(r.Context(), id, payload.Price)
	})
}

// SetMaxItems - изменить вместимость пула
func (h *Handler) SetMaxItems(w http.ResponseWriter, r *http.Request) {
	h.setter(w, r, func(r *http.Request, id int) error {
		payload, err := req.Decode[dto.SetMaxItemsRequest](r.Body)
		if err != nil {
			return err
		}
		return h.serv.SetMaxItems(r.Context(), id, payload.MaxItems)
	})
}

// SetFeeRate - изменить комиссию платформы
func (h *Handler) SetFeeRate(w http.ResponseWriter, r *http.Request) {
	h.setter(w, r, func(r *http.Request, id int) error {
		payload, err := req.Decode[dto.SetFeeRateRequest](r.Body)
		if err != nil {
			return err
		}
		return h.serv.SetFeeRate(r.Context(), id, payload.FeeRateBps)
	})
}

// SetMaintenance - включить или выключить режим обслуживания
func (h *Handler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	h.setter(w, r, func(r *http.Request, id int) error {
		payload, err := req.Decode[dto.SetFlagRequest](r.Body)
		if err != nil {
			return err
		}
		return h.serv.SetMaintenance(r.Context(), id, payload.On)
	})
}

// SetActive - включить или выключить кабинет
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	h.setter(w, r, func(r *http.Request, id int) error {
		payload, err := req.Decode[dto.SetFlagRequest](r.Body)
		if err != nil {
			return err
		}
		return h.serv.SetActive(r.Context(), id, payload.On)
	})
}

func (h *Handler) setter(w http.ResponseWriter, r *http.Request, apply func(r *http.Request, id int) error) {
	id, err := cabinetIDParam(r)
	if err != nil {
		http.Error(w, "invalid cabinet id", http.StatusBadRequest)
		return
	}

	if err = apply(r, id); err != nil {
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
	case errors.Is(err, cabinetserv.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, cabinetserv.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cabinetserv.ErrInvalidPrice),
		errors.Is(err, cabinetserv.ErrInvalidLimit),
		errors.Is(err, cabinetserv.ErrInvalidFee):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
