// Package auth — handlers.go обрабатывает HTTP-запросы регистрации и входа.
package auth

import (
	"context"
	"errors"
	"net/http"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы аутентификации.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик аутентификации.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register — POST /api/Auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	result, err := h.service.Register(r.Context(), req.Username, req.Password, req.Email)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, result)
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUsernameTaken):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Login — POST /api/Auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, h.service.Login)
}

// LoginAdmin — POST /api/AdminGeneric/loginadmin
func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, h.service.LoginAdmin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request,
	login func(ctx context.Context, username, password string) (*LoginResult, error),
) {
	var req loginRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	result, err := login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, result)
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrAccountNotActive):
		common.Message(w, http.StatusUnauthorized, err.Error())
	default:
		common.InternalError(w, err)
	}
}
