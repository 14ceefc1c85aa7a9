// Package economy — handlers.go обрабатывает HTTP-запросы экономики:
// балансы и покупки для игроков, управление валютами и балансами
// для администраторов.
package economy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Handler обрабатывает запросы экономики.
type Handler struct {
	service *Service
	repo    *Repository
}

// NewHandler создаёт обработчик экономики.
func NewHandler(service *Service, repo *Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

type purchaseRequest struct {
	AssetID    int             `json:"assetId"`
	CurrencyID int             `json:"currencyId"`
	Price      decimal.Decimal `json:"price"`
}

type currencyRequest struct {
	CurrencyName string `json:"currencyName"`
	Abbreviation string `json:"abbreviation"`
	IsPremium    bool   `json:"isPremium"`
}

type setBalanceRequest struct {
	CurrencyID int             `json:"currencyId"`
	Amount     decimal.Decimal `json:"amount"`
}

// MyBalances — GET /api/Currency/balance
func (h *Handler) MyBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	balances, err := h.service.Balances(r.Context(), userID)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, balances)
}

// Purchase — POST /api/Currency/purchase
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.Message(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}
	var req purchaseRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	result, err := h.service.Purchase(r.Context(), userID, req.AssetID, req.CurrencyID, req.Price)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, result)
	case errors.Is(err, common.ErrValidation):
		common.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrAssetUnavailable):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrAlreadyOwned):
		common.Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrInsufficientBalance):
		common.Message(w, http.StatusBadRequest, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// ListCurrencies — GET /api/Currency/types
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.repo.ListCurrencies(r.Context())
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, currencies)
}

// GetCurrency — GET /api/Currency/types/{currencyId}
func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	currencyID, err := strconv.Atoi(chi.URLParam(r, "currencyId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный currencyId")
		return
	}

	c, err := h.repo.GetCurrency(r.Context(), currencyID)
	switch {
	case err == nil:
		common.JSON(w, http.StatusOK, c)
	case errors.Is(err, common.ErrCurrencyNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// CreateCurrency — POST /api/Currency/types (admin)
func (h *Handler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if err := common.DecodeBody(r, &req); err != nil || req.CurrencyName == "" {
		common.Message(w, http.StatusBadRequest, "currencyName обязателен")
		return
	}

	id, err := h.repo.CreateCurrency(r.Context(), req.CurrencyName, req.Abbreviation, req.IsPremium)
	switch {
	case err == nil:
		common.JSON(w, http.StatusCreated, CurrencyType{
			CurrencyID:   id,
			CurrencyName: req.CurrencyName,
			Abbreviation: req.Abbreviation,
			IsPremium:    req.IsPremium,
		})
	case errors.Is(err, common.ErrDuplicate):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// UpdateCurrency — PUT /api/Currency/types/{currencyId} (admin)
func (h *Handler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	currencyID, err := strconv.Atoi(chi.URLParam(r, "currencyId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный currencyId")
		return
	}
	var req currencyRequest
	if err := common.DecodeBody(r, &req); err != nil || req.CurrencyName == "" {
		common.Message(w, http.StatusBadRequest, "currencyName обязателен")
		return
	}

	err = h.repo.UpdateCurrency(r.Context(), &CurrencyType{
		CurrencyID:   currencyID,
		CurrencyName: req.CurrencyName,
		Abbreviation: req.Abbreviation,
		IsPremium:    req.IsPremium,
	})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrCurrencyNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrDuplicate):
		common.Message(w, http.StatusConflict, err.Error())
	default:
		common.InternalError(w, err)
	}
}

// DeleteCurrency — DELETE /api/Currency/types/{currencyId} (admin)
func (h *Handler) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	currencyID, err := strconv.Atoi(chi.URLParam(r, "currencyId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный currencyId")
		return
	}

	err = h.repo.DeleteCurrency(r.Context(), currencyID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrCurrencyNotFound):
		common.Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrRowInUse):
		common.Message(w, http.StatusConflict, "по этой валюте есть балансы, удаление невозможно")
	default:
		common.InternalError(w, err)
	}
}

// SetBalance — PUT /api/Currency/balances/{userId} (admin)
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректный userId")
		return
	}
	var req setBalanceRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.Message(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	if req.Amount.IsNegative() {
		common.Message(w, http.StatusBadRequest, "баланс не может быть отрицательным")
		return
	}

	err = h.repo.SetBalance(r.Context(), userID, req.CurrencyID, req.Amount)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrNotFound):
		common.Message(w, http.StatusNotFound, "пользователь или валюта не найдены")
	default:
		common.InternalError(w, err)
	}
}

// DeleteBalance — DELETE /api/Currency/balances/{userId}/{currencyId} (admin)
func (h *Handler) DeleteBalance(w http.ResponseWriter, r *http.Request) {
	userID, err1 := strconv.Atoi(chi.URLParam(r, "userId"))
	currencyID, err2 := strconv.Atoi(chi.URLParam(r, "currencyId"))
	if err1 != nil || err2 != nil {
		common.Message(w, http.StatusBadRequest, "некорректные параметры пути")
		return
	}

	err := h.repo.DeleteBalance(r.Context(), userID, currencyID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrNotFound):
		common.Message(w, http.StatusNotFound, "баланс не найден")
	default:
		common.InternalError(w, err)
	}
}
