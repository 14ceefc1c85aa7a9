// Package avatar — handlers.go обрабатывает HTTP-запросы конфигураций аватара.
package avatar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы аватаров.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик аватаров.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type saveRequest struct {
	ConfigName string           `json:"configName"`
	Assets     []SlotAssignment `json:"assets"`
}

// Save — POST /api/Avatar/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	var req saveRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	configID, err := h.service.Save(r.Context(), userID, req.ConfigName, req.Assets)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, map[string]int{"configId": configID})
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInventoryNotOwned):
		common.Message(w, http.StatusBadRequest, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Load — GET /api/Avatar/load/{configId}
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	configID, err := strconv.Atoi(chi.URLParam(r, "configId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный configId")
		return
	}

	lc, err := h.service.Load(r.Context(), userID, configID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, lc)
	case errors.Is(err, common.ErrAvatarConfigNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// List — GET /api/Avatar/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	configs, err := h.service.List(r.Context(), userID)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, configs)
}
