// Package ugc — repository.go выполняет операции с таблицами
// user_assets и player_asset_inventory.
package ugc

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

// GetPlanLimits возвращает лимиты тарифного плана пользователя.
// Пользователь без плана — common.ErrPlanNotFound.
func (r *Repository) GetPlanLimits(ctx context.Context, userID int) (*PlanLimits, error) {
	query := `
		SELECT sp.max_assets_allowed, sp.max_poly_count, sp.max_texture_size_mb
		FROM users u
		JOIN subscription_plans sp ON sp.plan_id = u.plan_id
		WHERE u.user_id = $1
	`
	var limits PlanLimits
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&limits.MaxAssetsAllowed, &limits.MaxPolyCount, &limits.MaxTextureSizeMB,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPlanNotFound
		}
		return nil, fmt.Errorf("ошибка чтения лимитов плана (user_id=%d): %w", userID, err)
	}
	return &limits, nil
}

// CountCreated возвращает число мастер-ассетов, созданных пользователем.
func (r *Repository) CountCreated(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_assets WHERE ip_owner_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта ассетов создателя: %w", err)
	}
	return count, nil
}

// CountInventory возвращает число копий в инвентаре пользователя.
func (r *Repository) CountInventory(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM player_asset_inventory WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта инвентаря: %w", err)
	}
	return count, nil
}

// CreateWithCopy вставляет мастер-ассет и копию в инвентарь создателя
// в одной транзакции: либо появляются обе строки, либо ни одной.
func (r *Repository) CreateWithCopy(ctx context.Context, a *Asset) (*Asset, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции загрузки: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO user_assets (asset_name, asset_type, storage_path, poly_count, file_size_mb, status, is_public, ip_owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING asset_id, created_at
	`, a.AssetName, a.AssetType, a.StoragePath, a.PolyCount, a.FileSizeMB, a.Status, a.IPOwnerID,
	).Scan(&a.AssetID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания мастер-ассета: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO player_asset_inventory (user_id, master_asset_id, custom_properties)
		VALUES ($1, $2, '{}'::jsonb)
	`, a.IPOwnerID, a.AssetID); err != nil {
		return nil, fmt.Errorf("ошибка создания копии для создателя: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации загрузки: %w", err)
	}
	return a, nil
}

// GetPublicAsset возвращает публичный одобренный ассет
// или common.ErrAssetUnavailable.
func (r *Repository) GetPublicAsset(ctx context.Context, assetID int) (*Asset, error) {
	query := `
		SELECT asset_id, asset_name, asset_type, storage_path, poly_count, file_size_mb, status, is_public, ip_owner_id, created_at
		FROM user_assets
		WHERE asset_id = $1 AND is_public = TRUE AND status = 'Approved'
	`
	var a Asset
	err := r.db.QueryRow(ctx, query, assetID).Scan(
		&a.AssetID, &a.AssetName, &a.AssetType, &a.StoragePath, &a.PolyCount,
		&a.FileSizeMB, &a.Status, &a.IsPublic, &a.IPOwnerID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAssetUnavailable
		}
		return nil, fmt.Errorf("ошибка чтения ассета (asset_id=%d): %w", assetID, err)
	}
	return &a, nil
}

// InsertCopy добавляет копию мастер-ассета в инвентарь пользователя.
func (r *Repository) InsertCopy(ctx context.Context, userID, assetID int) (int, error) {
	var inventoryID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO player_asset_inventory (user_id, master_asset_id, custom_properties)
		VALUES ($1, $2, '{}'::jsonb)
		RETURNING inventory_id
	`, userID, assetID).Scan(&inventoryID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return 0, common.ErrAlreadyOwned
		}
		if common.IsForeignKeyViolation(err) {
			return 0, common.ErrAssetNotFound
		}
		return 0, fmt.Errorf("ошибка добавления копии в инвентарь: %w", err)
	}
	return inventoryID, nil
}

// Catalog возвращает публичные одобренные ассеты с именами создателей.
func (r *Repository) Catalog(ctx context.Context) ([]*CatalogEntry, error) {
	query := `
		SELECT a.asset_id, a.asset_name, a.asset_type, a.storage_path, u.username
		FROM user_assets a
		JOIN users u ON u.user_id = a.ip_owner_id
		WHERE a.is_public = TRUE AND a.status = 'Approved'
		ORDER BY a.asset_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	defer rows.Close()

	var result []*CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.AssetID, &e.AssetName, &e.AssetType, &e.StoragePath, &e.OwnerName); err != nil {
			return nil, fmt.Errorf("ошибка сканирования каталога: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

// ListPending возвращает ассеты в статусе Pending для модерации.
func (r *Repository) ListPending(ctx context.Context) ([]*Asset, error) {
	query := `
		SELECT asset_id, asset_name, asset_type, storage_path, poly_count, file_size_mb, status, is_public, ip_owner_id, created_at
		FROM user_assets
		WHERE status = 'Pending'
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения очереди модерации: %w", err)
	}
	defer rows.Close()

	var result []*Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(
			&a.AssetID, &a.AssetName, &a.AssetType, &a.StoragePath, &a.PolyCount,
			&a.FileSizeMB, &a.Status, &a.IsPublic, &a.IPOwnerID, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования очереди модерации: %w", err)
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// Approve одобряет ассет: статус Approved, публикация в каталоге.
func (r *Repository) Approve(ctx context.Context, assetID int) error {
	query := `
		UPDATE user_assets
		SET status = 'Approved', is_public = TRUE
		WHERE asset_id = $1 AND status = 'Pending'
	`
	tag, err := r.db.Exec(ctx, query, assetID)
	if err != nil {
		return fmt.Errorf("ошибка одобрения ассета: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAssetNotFound
	}
	return nil
}

// Delete удаляет мастер-ассет. Пока на него ссылаются копии
// в инвентарях, внешний ключ RESTRICT блокирует удаление.
func (r *Repository) Delete(ctx context.Context, assetID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_assets WHERE asset_id = $1`, assetID)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.ErrRowInUse
		}
		return fmt.Errorf("ошибка удаления ассета: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAssetNotFound
	}
	return nil
}
