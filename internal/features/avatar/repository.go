// Package avatar — repository.go выполняет операции с таблицами
// avatar_configs и avatar_asset_mapping.
//
// Сохранение — полная замена: старые маппинги конфигурации удаляются,
// новые вставляются, всё в одной транзакции вместе с созданием самой
// конфигурации. Частично сохранённых наборов не бывает.
package avatar

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

// CountOwnedItems возвращает, сколько из перечисленных предметов
// инвентаря принадлежит пользователю.
func (r *Repository) CountOwnedItems(ctx context.Context, userID int, inventoryIDs []int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT inventory_id)
		FROM player_asset_inventory
		WHERE user_id = $1 AND inventory_id = ANY($2)
	`, userID, inventoryIDs).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки владения инвентарём: %w", err)
	}
	return count, nil
}

// Save сохраняет конфигурацию с полной заменой экипировки
// в одной транзакции. Конфигурация ищется по имени и создаётся
// при отсутствии. Возвращает ID конфигурации.
func (r *Repository) Save(ctx context.Context, userID int, configName string, items []SlotAssignment) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия транзакции сохранения аватара: %w", err)
	}
	defer tx.Rollback(ctx)

	var configID int
	err = tx.QueryRow(ctx, `
		INSERT INTO avatar_configs (user_id, config_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, config_name) DO UPDATE SET config_name = EXCLUDED.config_name
		RETURNING config_id
	`, userID, configName).Scan(&configID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания конфигурации аватара: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM avatar_asset_mapping WHERE config_id = $1`, configID); err != nil {
		return 0, fmt.Errorf("ошибка очистки старой экипировки: %w", err)
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO avatar_asset_mapping (config_id, inventory_id, slot)
			VALUES ($1, $2, $3)
		`, configID, item.InventoryID, item.Slot); err != nil {
			if common.IsForeignKeyViolation(err) {
				return 0, common.ErrInventoryNotOwned
			}
			return 0, fmt.Errorf("ошибка записи экипировки (slot=%s): %w", item.Slot, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации сохранения аватара: %w", err)
	}
	return configID, nil
}

// Load возвращает конфигурацию пользователя с развёрнутой экипировкой.
// Чужая или несуществующая конфигурация — одинаковая ошибка
// common.ErrAvatarConfigNotFound.
func (r *Repository) Load(ctx context.Context, userID, configID int) (*LoadedConfig, error) {
	var lc LoadedConfig
	err := r.db.QueryRow(ctx, `
		SELECT config_id, config_name FROM avatar_configs
		WHERE config_id = $1 AND user_id = $2
	`, configID, userID).Scan(&lc.ConfigID, &lc.ConfigName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAvatarConfigNotFound
		}
		return nil, fmt.Errorf("ошибка чтения конфигурации аватара (config_id=%d): %w", configID, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT m.slot, a.asset_name, a.storage_path, i.custom_properties
		FROM avatar_asset_mapping m
		JOIN player_asset_inventory i ON i.inventory_id = m.inventory_id
		JOIN user_assets a ON a.asset_id = i.master_asset_id
		WHERE m.config_id = $1
		ORDER BY m.slot
	`, configID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения экипировки: %w", err)
	}
	defer rows.Close()

	lc.Items = []*EquippedItem{}
	for rows.Next() {
		var item EquippedItem
		if err := rows.Scan(&item.Slot, &item.AssetName, &item.StoragePath, &item.CustomProperties); err != nil {
			return nil, fmt.Errorf("ошибка сканирования экипировки: %w", err)
		}
		lc.Items = append(lc.Items, &item)
	}
	return &lc, rows.Err()
}

// List возвращает конфигурации пользователя.
func (r *Repository) List(ctx context.Context, userID int) ([]*Config, error) {
	rows, err := r.db.Query(ctx, `
		SELECT config_id, user_id, config_name FROM avatar_configs
		WHERE user_id = $1
		ORDER BY config_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка конфигураций: %w", err)
	}
	defer rows.Close()

	var result []*Config
	for rows.Next() {
		var c Config
		if err := rows.Scan(&c.ConfigID, &c.UserID, &c.ConfigName); err != nil {
			return nil, fmt.Errorf("ошибка сканирования конфигурации: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}
