// Package friends — handlers.go обрабатывает HTTP-запросы социального графа.
package friends

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы друзей.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик друзей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Send — POST /api/Friends/send/{targetUserId}
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	targetID, err := strconv.Atoi(chi.URLParam(r, "targetUserId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный targetUserId")
		return
	}

	err = h.service.SendRequest(r.Context(), userID, targetID)
	switch {
	case err == nil:
		common.Message(w, http.StatusCreated, "заявка отправлена")
	case errors.Is(err, common.ErrSelfFriendRequest):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrFriendshipExists):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Accept — POST /api/Friends/accept/{requesterId}
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	requesterID, err := strconv.Atoi(chi.URLParam(r, "requesterId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный requesterId")
		return
	}

	err = h.service.AcceptRequest(r.Context(), userID, requesterID)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "заявка подтверждена")
	case errors.Is(err, common.ErrFriendshipNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// List — GET /api/Friends/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, entries)
}

// Remove — DELETE /api/Friends/remove/{friendId}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	friendID, err := strconv.Atoi(chi.URLParam(r, "friendId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный friendId")
		return
	}

	err = h.service.Remove(r.Context(), userID, friendID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrFriendshipNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}
