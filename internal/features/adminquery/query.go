// Package adminquery — query.go собирает SQL из пользовательского ввода.
// Идентификаторы проходят через жёсткую чистку до [A-Za-z0-9_],
// значения фильтров всегда уходят связанными параметрами,
// поэтому конкатенация безопасна.
package adminquery

import (
	"fmt"
	"strings"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// sanitizeIdentifier оставляет в идентификаторе только буквы,
// цифры и подчёркивание.
func sanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildColumns превращает пользовательский список колонок в безопасный
// SELECT-список. "*" проходит как есть; пустой результат чистки
// откатывается к "*".
func BuildColumns(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return "*"
	}

	var cols []string
	for _, part := range strings.Split(raw, ",") {
		if clean := sanitizeIdentifier(strings.TrimSpace(part)); clean != "" {
			cols = append(cols, fmt.Sprintf("%q", clean))
		}
	}
	if len(cols) == 0 {
		return "*"
	}
	return strings.Join(cols, ", ")
}

// BuildFilter разбирает фильтр вида "col:substr|col2:substr2" в условие
// WHERE из ANDed ILIKE с связанными параметрами. Пары без ровно одного
// двоеточия молча пропускаются. Возвращает пустую строку, если условий нет.
func BuildFilter(raw string) (string, []any) {
	var conds []string
	var args []any

	for _, pair := range strings.Split(raw, "|") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			continue
		}
		col := sanitizeIdentifier(strings.TrimSpace(parts[0]))
		val := parts[1]
		if col == "" || val == "" {
			continue
		}
		args = append(args, "%"+val+"%")
		conds = append(conds, fmt.Sprintf("%q::text ILIKE $%d", col, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ClampPage считает число страниц, зажимает номер страницы в
// [1, max(1, totalPages)] и возвращает смещение выборки.
func ClampPage(page, perPage, totalItems int) (clamped, totalPages, offset int) {
	totalPages = (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages, (page - 1) * perPage
}
