// Package adminquery — repository.go выполняет постраничные выборки.
// Идентификаторы в Query приходят либо из кода, либо уже очищенными,
// значения фильтров всегда связанные параметры.
package adminquery

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Paginate выполняет выборку одной страницы: COUNT с теми же условиями,
// зажим номера страницы, затем данные с LIMIT/OFFSET.
// Строки разворачиваются в map по описаниям колонок ответа.
func (r *Repository) Paginate(ctx context.Context, q Query, filter string, page, perPage int) (*Page, error) {
	where, args := BuildFilter(filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s%s`, q.Table, q.Joins, where)
	var totalItems int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта строк (%s): %w", q.Table, err)
	}

	page, totalPages, offset := ClampPage(page, perPage, totalItems)

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "1"
	}
	dataQuery := fmt.Sprintf(
		`SELECT %s FROM %s %s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		q.Columns, q.Table, q.Joins, where, orderBy, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, dataQuery, append(args, perPage, offset)...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки страницы (%s): %w", q.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	data := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения значений строки: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = values[i]
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода страницы: %w", err)
	}

	return &Page{
		CurrentPage:  page,
		ItemsPerPage: perPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		Data:         data,
	}, nil
}
