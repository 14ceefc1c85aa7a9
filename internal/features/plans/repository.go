// Package plans — repository.go выполняет операции с таблицей subscription_plans.
package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/oasis-backend/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List возвращает все планы, отсортированные по цене.
func (r *Repository) List(ctx context.Context) ([]*Plan, error) {
	query := `
		SELECT plan_id, plan_name, max_assets_allowed, max_poly_count, max_texture_size_mb, price_monthly
		FROM subscription_plans
		ORDER BY price_monthly ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения планов: %w", err)
	}
	defer rows.Close()

	var result []*Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.PlanID, &p.PlanName, &p.MaxAssetsAllowed, &p.MaxPolyCount, &p.MaxTextureSizeMB, &p.PriceMonthly); err != nil {
			return nil, fmt.Errorf("ошибка сканирования плана: %w", err)
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

// GetByID возвращает план по ID или common.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, planID int) (*Plan, error) {
	query := `
		SELECT plan_id, plan_name, max_assets_allowed, max_poly_count, max_texture_size_mb, price_monthly
		FROM subscription_plans
		WHERE plan_id = $1
	`
	var p Plan
	err := r.db.QueryRow(ctx, query, planID).Scan(
		&p.PlanID, &p.PlanName, &p.MaxAssetsAllowed, &p.MaxPolyCount, &p.MaxTextureSizeMB, &p.PriceMonthly,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения плана (plan_id=%d): %w", planID, err)
	}
	return &p, nil
}

// GetIDByName ищет план по названию. Используется при регистрации
// для назначения плана по умолчанию.
func (r *Repository) GetIDByName(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT plan_id FROM subscription_plans WHERE plan_name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("ошибка поиска плана (name=%s): %w", name, err)
	}
	return id, nil
}

// Create добавляет новый план и возвращает его ID.
func (r *Repository) Create(ctx context.Context, p *Plan) (int, error) {
	query := `
		INSERT INTO subscription_plans (plan_name, max_assets_allowed, max_poly_count, max_texture_size_mb, price_monthly)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING plan_id
	`
	var id int
	err := r.db.QueryRow(ctx, query,
		p.PlanName, p.MaxAssetsAllowed, p.MaxPolyCount, p.MaxTextureSizeMB, p.PriceMonthly,
	).Scan(&id)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return 0, common.ErrDuplicate
		}
		return 0, fmt.Errorf("ошибка создания плана: %w", err)
	}
	return id, nil
}

// Update обновляет план целиком.
func (r *Repository) Update(ctx context.Context, p *Plan) error {
	query := `
		UPDATE subscription_plans
		SET plan_name = $2, max_assets_allowed = $3, max_poly_count = $4,
		    max_texture_size_mb = $5, price_monthly = $6
		WHERE plan_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		p.PlanID, p.PlanName, p.MaxAssetsAllowed, p.MaxPolyCount, p.MaxTextureSizeMB, p.PriceMonthly,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления плана: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete удаляет план. Если план назначен пользователям —
// внешний ключ RESTRICT блокирует удаление (common.ErrRowInUse).
func (r *Repository) Delete(ctx context.Context, planID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscription_plans WHERE plan_id = $1`, planID)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.ErrRowInUse
		}
		return fmt.Errorf("ошибка удаления плана: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
