// Package adminquery — универсальный табличный просмотр для админ-панели:
// постраничная выдача любой разрешённой таблицы с фильтрами по подстроке.
// models.go описывает конфигурацию запроса и формат страницы.
package adminquery

// Query — конфигурация постраничной выборки: таблица, произвольные
// JOIN-ы, список колонок и сортировка. Переиспользуется готовыми
// списками (балансы, пользователи) и универсальным эндпоинтом.
type Query struct {
	Table   string
	Joins   string
	Columns string
	OrderBy string
}

// Page — страница выдачи.
type Page struct {
	CurrentPage  int              `json:"currentPage"`
	ItemsPerPage int              `json:"itemsPerPage"`
	TotalItems   int              `json:"totalItems"`
	TotalPages   int              `json:"totalPages"`
	Data         []map[string]any `json:"data"`
}
