// Package adminquery — handlers.go обрабатывает админские запросы
// табличного просмотра. Таблицы строго по списку разрешённых,
// всё остальное отклоняется до обращения к базе.
package adminquery

import (
	"net/http"
	"strconv"

	"serotonyl.ru/oasis-backend/internal/common"
)

// allowedTables — одиннадцать таблиц сущностей, доступных просмотру.
var allowedTables = map[string]struct{}{
	"subscription_plans":     {},
	"users":                  {},
	"user_assets":            {},
	"player_asset_inventory": {},
	"avatar_configs":         {},
	"avatar_asset_mapping":   {},
	"world_configs":          {},
	"world_instances":        {},
	"user_friendships":       {},
	"currency_types":         {},
	"user_balances":          {},
}

// Handler обрабатывает запросы табличного просмотра.
type Handler struct {
	repo *Repository
}

// NewHandler создаёт обработчик табличного просмотра.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// pageParams разбирает параметры пагинации. Отсутствующие параметры
// получают значения по умолчанию, значения вне диапазона — ошибка:
// клиент должен получить 400, а не молча исправленную страницу.
func pageParams(r *http.Request) (page, perPage int, err error) {
	page, perPage = 1, defaultPerPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return 0, 0, common.ErrValidation
		}
	}
	if raw := r.URL.Query().Get("itemsPerPage"); raw != "" {
		if perPage, err = strconv.Atoi(raw); err != nil || perPage < 1 || perPage > maxPerPage {
			return 0, 0, common.ErrValidation
		}
	}
	return page, perPage, nil
}

// Paginate — GET /api/AdminGeneric/paginate (admin)
// Параметры: table, columns, filter, page, itemsPerPage.
func (h *Handler) Paginate(w http.ResponseWriter, r *http.Request) {
	table := sanitizeIdentifier(r.URL.Query().Get("table"))
	if _, ok := allowedTables[table]; !ok {
		common.Message(w, http.StatusBadRequest, "таблица недоступна для просмотра")
		return
	}
	page, perPage, err := pageParams(r)
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректные параметры пагинации")
		return
	}

	result, err := h.repo.Paginate(r.Context(), Query{
		Table:   table,
		Columns: BuildColumns(r.URL.Query().Get("columns")),
	}, r.URL.Query().Get("filter"), page, perPage)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// Balances — GET /api/AdminGeneric/balances (admin)
// Готовый список балансов с именами пользователей и валют.
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := pageParams(r)
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректные параметры пагинации")
		return
	}

	result, err := h.repo.Paginate(r.Context(), Query{
		Table:   "user_balances ub",
		Joins:   "JOIN users u ON u.user_id = ub.user_id JOIN currency_types ct ON ct.currency_id = ub.currency_id",
		Columns: "ub.user_id, u.username, ct.currency_name, ct.abbreviation, ub.amount",
		OrderBy: "u.username, ct.currency_name",
	}, r.URL.Query().Get("filter"), page, perPage)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// Users — GET /api/AdminGeneric/users (admin)
// Готовый список пользователей с названием тарифного плана.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := pageParams(r)
	if err != nil {
		common.Message(w, http.StatusBadRequest, "некорректные параметры пагинации")
		return
	}

	result, err := h.repo.Paginate(r.Context(), Query{
		Table:   "users u",
		Joins:   "LEFT JOIN subscription_plans sp ON sp.plan_id = u.plan_id",
		Columns: "u.user_id, u.username, u.email, u.status, u.role, sp.plan_name, u.created_at",
		OrderBy: "u.user_id",
	}, r.URL.Query().Get("filter"), page, perPage)
	if err != nil {
		common.InternalError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}
