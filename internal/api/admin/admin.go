package admin

import (
	dto "gachapon_backend/internal/api/dto/random"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/service"
	randomserv "gachapon_backend/internal/service/random"
	"gachapon_backend/pkg/req"
	"gachapon_backend/pkg/resp"
	"errors"
	"net/http"
)

type HandlerDeps struct {
	Serv       service.AdminService
	RandomServ service.RandomService
}

type Handler struct {
	serv       service.AdminService
	randomServ service.RandomService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, randomServ: deps.RandomServ}
}

// Pause - остановить все изменяющие операции платформы
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.Pause(r.Context()); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Unpause - снять глобальную паузу
func (h *Handler) Unpause(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.Unpause(r.Context()); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Status - текущее состояние паузы
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"paused": h.serv.IsPaused(r.Context()),
	})
}

// AddConsumer - разрешить потребителя источника случайности
func (h *Handler) AddConsumer(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ConsumerRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.randomServ.AddConsumer(r.Context(), payload.Name); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveConsumer - убрать потребителя источника случайности
func (h *Handler) RemoveConsumer(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ConsumerRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.randomServ.RemoveConsumer(r.Context(), payload.Name); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Consumers - список разрешенных потребителей
func (h *Handler) Consumers(w http.ResponseWriter, r *http.Request) {
	consumers, err := h.randomServ.Consumers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ConsumersResponse{Consumers: consumers})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, middleware.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, randomserv.ErrPaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
