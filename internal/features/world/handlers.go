// Package world — handlers.go обрабатывает HTTP-запросы реестра миров.
// Часть маршрутов вызывается игроками, часть — игровыми серверами
// (роль server), разграничение делает middleware в httpserver.
package world

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы реестра миров.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик миров.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	WorldConfigID int    `json:"worldConfigId"`
	IPAddress     string `json:"ipAddress"`
	Port          int    `json:"port"`
}

type heartbeatRequest struct {
	PlayerCount int `json:"playerCount"`
}

// GetConfig — GET /api/World/config/{worldId}
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	worldID, err := strconv.Atoi(chi.URLParam(r, "worldId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный worldId")
		return
	}

	cfg, err := h.service.GetConfig(r.Context(), worldID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, cfg)
	case errors.Is(err, common.ErrWorldConfigNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Register — POST /api/World/register (роль admin|server)
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	inst, err := h.service.Register(r.Context(), req.WorldConfigID, req.IPAddress, req.Port)
	switch {
	case err == nil:
		common.JSON(w, http.StatusCreated, inst)
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrWorldConfigNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Heartbeat — PUT /api/World/update/{instanceId} (роль admin|server)
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	instanceID, err := strconv.Atoi(chi.URLParam(r, "instanceId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный instanceId")
		return
	}
	var req heartbeatRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	err = h.service.Heartbeat(r.Context(), instanceID, req.PlayerCount)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "счётчик игроков обновлён")
	case errors.Is(err, common.ErrNegativePlayerCount):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInstanceNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Join — POST /api/World/join/{worldId}
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	worldID, err := strconv.Atoi(chi.URLParam(r, "worldId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный worldId")
		return
	}

	a, err := h.service.Join(r.Context(), worldID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, a)
	case errors.Is(err, common.ErrNoCapacity):
		common.Message(w, http.StatusServiceUnavailable, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Leave — POST /api/World/leave/{instanceId}
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	instanceID, err := strconv.Atoi(chi.URLParam(r, "instanceId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный instanceId")
		return
	}

	err = h.service.Leave(r.Context(), instanceID)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "выход из инстанции учтён")
	case errors.Is(err, common.ErrInstanceNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Deregister — DELETE /api/World/deregister/{instanceId} (роль admin|server)
func (h *Handler) Deregister(w http.ResponseWriter, r *http.Request) {
	instanceID, err := strconv.Atoi(chi.URLParam(r, "instanceId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный instanceId")
		return
	}

	if err := h.service.Deregister(r.Context(), instanceID); err != nil {
		common.InternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
