// Package friends — repository.go выполняет операции с таблицей
// user_friendships. Уникальность неупорядоченной пары обеспечивает
// индекс по LEAST/GREATEST, поэтому встречная заявка ловится базой.
package friends

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/oasis-backend/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create добавляет заявку в статусе Pending.
func (r *Repository) Create(ctx context.Context, requesterID, targetID int) error {
	query := `
		INSERT INTO user_friendships (requester_id, target_id, status, created_at)
		VALUES ($1, $2, 'Pending', NOW())
	`
	if _, err := r.db.Exec(ctx, query, requesterID, targetID); err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrFriendshipExists
		}
		if common.IsForeignKeyViolation(err) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка создания заявки в друзья: %w", err)
	}
	return nil
}

// Accept подтверждает входящую заявку: строка должна быть Pending,
// а подтверждающий — её адресатом.
func (r *Repository) Accept(ctx context.Context, targetID, requesterID int) error {
	query := `
		UPDATE user_friendships
		SET status = 'Accepted', accepted_at = NOW()
		WHERE requester_id = $2 AND target_id = $1 AND status = 'Pending'
	`
	tag, err := r.db.Exec(ctx, query, targetID, requesterID)
	if err != nil {
		return fmt.Errorf("ошибка подтверждения заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrFriendshipNotFound
	}
	return nil
}

// List возвращает все связи пользователя в обоих направлениях:
// контрагента, статус и направление заявки.
func (r *Repository) List(ctx context.Context, userID int) ([]*FriendEntry, error) {
	query := `
		SELECT
			CASE WHEN f.requester_id = $1 THEN f.target_id ELSE f.requester_id END AS other_id,
			u.username,
			f.status,
			f.target_id = $1 AND f.status = 'Pending' AS incoming
		FROM user_friendships f
		JOIN users u ON u.user_id = CASE WHEN f.requester_id = $1 THEN f.target_id ELSE f.requester_id END
		WHERE f.requester_id = $1 OR f.target_id = $1
		ORDER BY u.username
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка друзей: %w", err)
	}
	defer rows.Close()

	var result []*FriendEntry
	for rows.Next() {
		var e FriendEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Status, &e.Incoming); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи друзей: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

// Delete удаляет связь в любом направлении: отклонение заявки
// и удаление из друзей — одна и та же операция.
func (r *Repository) Delete(ctx context.Context, userID, otherID int) error {
	query := `
		DELETE FROM user_friendships
		WHERE (requester_id = $1 AND target_id = $2)
		   OR (requester_id = $2 AND target_id = $1)
	`
	tag, err := r.db.Exec(ctx, query, userID, otherID)
	if err != nil {
		return fmt.Errorf("ошибка удаления связи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrFriendshipNotFound
	}
	return nil
}
