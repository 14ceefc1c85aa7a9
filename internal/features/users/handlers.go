// Package users — handlers.go обрабатывает HTTP-запросы профиля
// и административные операции над пользователями.
package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы пользователей.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик пользователей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me — GET /api/User/me: профиль текущего пользователя.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, profile)
	case errors.Is(err, common.ErrUserNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus — PUT /api/User/{userId}/status (admin): бан/разбан.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный userId")
		return
	}
	var req statusRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	err = h.service.SetStatus(r.Context(), userID, req.Status)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "статус обновлён")
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole — PUT /api/User/{userId}/role (admin).
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный userId")
		return
	}
	var req roleRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	err = h.service.SetRole(r.Context(), userID, req.Role)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "роль обновлена")
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Delete — DELETE /api/User/{userId} (admin).
// Блокируется, пока пользователь владеет созданными ассетами.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный userId")
		return
	}

	err = h.service.Delete(r.Context(), userID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrUserNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrRowInUse):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}
