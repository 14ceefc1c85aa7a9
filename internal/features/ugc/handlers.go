// Package ugc — handlers.go обрабатывает HTTP-запросы ассетов:
// загрузку и приобретение для игроков, каталог для всех,
// модерацию и удаление для администраторов.
package ugc

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы UGC.
type Handler struct {
	service *Service
	repo    *Repository
}

// NewHandler создаёт обработчик UGC.
func NewHandler(service *Service, repo *Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

// Upload — POST /api/UGC/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	var req UploadRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	asset, err := h.service.Upload(r.Context(), userID, &req)
	switch {
	case err == nil:
		common.JSON(w, http.StatusCreated, asset)
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrPlanNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrAssetLimitReached),
		errors.Is(err, common.ErrAssetQualityExceeded):
		common.Message(w, http.StatusBadRequest, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Catalog — GET /api/UGC/catalog (доступен без авторизации)
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.Catalog(r.Context())
	if err != nil {
		common.InternalError(w, err)
		return
	}
	if entries == nil {
		entries = []*CatalogEntry{}
	}
	common.JSON(w, http.StatusOK, entries)
}

// Acquire — POST /api/UGC/acquire/{assetId}
func (h *Handler) Acquire(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	assetID, err := strconv.Atoi(chi.URLParam(r, "assetId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный assetId")
		return
	}

	inventoryID, err := h.service.Acquire(r.Context(), userID, assetID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusCreated, map[string]int{"inventoryId": inventoryID})
	case errors.Is(err, common.ErrAssetUnavailable), errors.Is(err, common.ErrAssetNotFound):
		common.Message(w, http.StatusNotFound, common.ErrAssetUnavailable.Error())
	case errors.Is(err, common.ErrPlanNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrAlreadyOwned):
		common.Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrInventoryFull):
		common.Message(w, http.StatusBadRequest, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// Pending — GET /api/UGC/moderation/pending (admin)
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	assets, err := h.repo.ListPending(r.Context())
	if err != nil {
		common.InternalError(w, err)
		return
	}
	if assets == nil {
		assets = []*Asset{}
	}
	common.JSON(w, http.StatusOK, assets)
}

// Approve — POST /api/UGC/moderation/approve/{assetId} (admin)
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "assetId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный assetId")
		return
	}

	err = h.repo.Approve(r.Context(), assetID)
	switch {
	case err == nil:
		common.Message(w, http.StatusOK, "ассет одобрен и опубликован")
	case errors.Is(err, common.ErrAssetNotFound):
		common.Message(w, http.StatusNotFound, "ассет не найден или уже обработан")
	default:
		common.InternalError(w, err)
	}
}

// Delete — DELETE /api/UGC/{assetId} (admin)
// Ассет с копиями в инвентарях удалить нельзя.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "assetId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный assetId")
		return
	}

	err = h.repo.Delete(r.Context(), assetID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrAssetNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrRowInUse):
		common.Message(w, http.StatusConflict, "ассет используется в инвентарях и не может быть удалён")
	default:
		common.InternalError(w, err)
	}
}
