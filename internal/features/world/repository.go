// Package world — repository.go выполняет операции с таблицами
// world_configs и world_instances.
//
// Счётчик игроков меняется ТОЛЬКО одиночными условными UPDATE-ами:
// выбор и инкремент при подключении — одно атомарное выражение,
// поэтому параллельные подключения не могут переполнить инстанцию.
package world

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// GetConfig возвращает конфигурацию мира или common.ErrWorldConfigNotFound.
func (r *Repository) GetConfig(ctx context.Context, worldID int) (*Config, error) {
	query := `
		SELECT world_id, world_name, scene_path, gravity, max_players
		FROM world_configs
		WHERE world_id = $1
	`
	var c Config
	err := r.db.QueryRow(ctx, query, worldID).Scan(
		&c.WorldID, &c.WorldName, &c.ScenePath, &c.Gravity, &c.MaxPlayers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrWorldConfigNotFound
		}
		return nil, fmt.Errorf("ошибка чтения конфигурации мира (world_id=%d): %w", worldID, err)
	}
	return &c, nil
}

// RegisterInstance регистрирует новую инстанцию с нулём игроков.
// Неизвестный world_id ловится внешним ключом (common.ErrWorldConfigNotFound).
func (r *Repository) RegisterInstance(ctx context.Context, worldID int, ipAddress string, port int) (*Instance, error) {
	query := `
		INSERT INTO world_instances (world_id, ip_address, port, current_players, started_at, last_seen_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING instance_id, world_id, ip_address, port, current_players, started_at, last_seen_at
	`
	var inst Instance
	err := r.db.QueryRow(ctx, query, worldID, ipAddress, port).Scan(
		&inst.InstanceID, &inst.WorldID, &inst.IPAddress, &inst.Port,
		&inst.CurrentPlayers, &inst.StartedAt, &inst.LastSeenAt,
	)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return nil, common.ErrWorldConfigNotFound
		}
		return nil, fmt.Errorf("ошибка регистрации инстанции: %w", err)
	}
	return &inst, nil
}

// UpdatePlayerCount перезаписывает счётчик игроков абсолютным значением
// (heartbeat от игрового сервера) и обновляет отметку last_seen_at.
func (r *Repository) UpdatePlayerCount(ctx context.Context, instanceID, count int) error {
	query := `
		UPDATE world_instances
		SET current_players = $2, last_seen_at = NOW()
		WHERE instance_id = $1
	`
	tag, err := r.db.Exec(ctx, query, instanceID, count)
	if err != nil {
		return fmt.Errorf("ошибка обновления счётчика игроков: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrInstanceNotFound
	}
	return nil
}

// Join атомарно выбирает наименее загруженную незаполненную инстанцию мира
// и инкрементирует её счётчик. FOR UPDATE SKIP LOCKED не даёт двум
// параллельным подключениям сесть на одну строку и превысить лимит.
// Если свободных инстанций нет — common.ErrNoCapacity.
func (r *Repository) Join(ctx context.Context, worldID, capacity int) (*Assignment, error) {
	query := `
		WITH candidate AS (
			SELECT instance_id
			FROM world_instances
			WHERE world_id = $1 AND current_players < $2
			ORDER BY current_players ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE world_instances wi
		SET current_players = wi.current_players + 1
		FROM candidate c, world_configs wc
		WHERE wi.instance_id = c.instance_id AND wc.world_id = wi.world_id
		RETURNING wi.instance_id, wi.ip_address, wi.port, wc.world_name
	`
	var a Assignment
	err := r.db.QueryRow(ctx, query, worldID, capacity).Scan(
		&a.InstanceID, &a.IPAddress, &a.Port, &a.WorldName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNoCapacity
		}
		return nil, fmt.Errorf("ошибка подбора инстанции (world_id=%d): %w", worldID, err)
	}
	return &a, nil
}

// Leave декрементирует счётчик игроков с нижней границей ноль.
func (r *Repository) Leave(ctx context.Context, instanceID int) error {
	query := `
		UPDATE world_instances
		SET current_players = GREATEST(current_players - 1, 0)
		WHERE instance_id = $1
	`
	tag, err := r.db.Exec(ctx, query, instanceID)
	if err != nil {
		return fmt.Errorf("ошибка выхода из мира: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrInstanceNotFound
	}
	return nil
}

// Deregister удаляет инстанцию. Отсутствующая инстанция — не ошибка
// (идемпотентное удаление).
func (r *Repository) Deregister(ctx context.Context, instanceID int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM world_instances WHERE instance_id = $1`, instanceID); err != nil {
		return fmt.Errorf("ошибка снятия инстанции с регистрации: %w", err)
	}
	return nil
}

// ReapStale удаляет инстанции без heartbeat дольше ttl.
// Возвращает количество удалённых.
func (r *Repository) ReapStale(ctx context.Context, ttl time.Duration) (int64, error) {
	query := `DELETE FROM world_instances WHERE last_seen_at < NOW() - $1::interval`
	tag, err := r.db.Exec(ctx, query, ttl.String())
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки мёртвых инстанций: %w", err)
	}
	return tag.RowsAffected(), nil
}
