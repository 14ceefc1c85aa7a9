// Package plans — handlers.go обрабатывает административный CRUD планов.
// Простые операции без отдельного сервисного слоя: обработчик сразу
// обращается к репозиторию.
package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы планов.
type Handler struct {
	repo *Repository
}

// NewHandler создаёт обработчик планов.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List — GET /api/Plans
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.List(r.Context())
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// Get — GET /api/Plans/{planId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	planID, err := strconv.Atoi(chi.URLParam(r, "planId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный planId")
		return
	}
	p, err := h.repo.GetByID(r.Context(), planID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, p)
	case errors.Is(err, common.ErrNotFound):
		common.Message(w, http.StatusNotFound, "план не найден")
	default:
		common.InternalError(w, err)
	}
}

// Create — POST /api/Plans (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Plan
	if err := common.DecodeBody(r, &p); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	if p.PlanName == "" || p.MaxAssetsAllowed < 0 {
		common.Message(w, http.StatusBadRequest, "planName обязателен, лимиты не могут быть отрицательными")
		return
	}

	id, err := h.repo.Create(r.Context(), &p)
	switch {
	case err == nil:
		p.PlanID = id
		common.JSON(w, http.StatusCreated, p)
	case errors.Is(err, common.ErrDuplicate):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Update — PUT /api/Plans/{planId} (admin)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	planID, err := strconv.Atoi(chi.URLParam(r, "planId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный planId")
		return
	}
	var p Plan
	if err := common.DecodeBody(r, &p); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	p.PlanID = planID

	err = h.repo.Update(r.Context(), &p)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrNotFound):
		common.Message(w, http.StatusNotFound, "план не найден")
	default:
		common.InternalError(w, err)
	}
}

// Delete — DELETE /api/Plans/{planId} (admin)
// План, назначенный пользователям, удалить нельзя.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	planID, err := strconv.Atoi(chi.URLParam(r, "planId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный planId")
		return
	}

	err = h.repo.Delete(r.Context(), planID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrNotFound):
		common.Message(w, http.StatusNotFound, "план не найден")
	case errors.Is(err, common.ErrRowInUse):
		common.Message(w, http.StatusConflict, "план назначен пользователям и не может быть удалён")
	default:
		common.InternalError(w, err)
	}
}
