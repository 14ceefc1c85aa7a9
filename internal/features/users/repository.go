// Package users — repository.go отвечает за все операции с таблицей users в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package users

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

// Create добавляет нового пользователя и возвращает его user_id.
// Конфликт по username превращается в common.ErrUsernameTaken.
func (r *Repository) Create(ctx context.Context, u *User) (int, error) {
	query := `
		INSERT INTO users (username, password_hash, email, status, role, plan_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`
	var id int
	err := r.db.QueryRow(ctx, query,
		u.Username, u.PasswordHash, u.Email, u.Status, u.Role, u.PlanID,
	).Scan(&id)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return 0, common.ErrUsernameTaken
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return id, nil
}

// GetByUsername возвращает пользователя вместе с названием его плана.
// Если не найден — common.ErrUserNotFound.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT u.user_id, u.username, u.password_hash, COALESCE(u.email, ''), u.status, u.role,
		       u.plan_id, p.plan_name, u.created_at
		FROM users u
		LEFT JOIN subscription_plans p ON p.plan_id = u.plan_id
		WHERE u.username = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.UserID, &u.Username, &u.PasswordHash, &u.Email, &u.Status, &u.Role,
		&u.PlanID, &u.PlanName, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (username=%s): %w", username, err)
	}
	return &u, nil
}

// GetByID возвращает пользователя по user_id (с названием плана).
func (r *Repository) GetByID(ctx context.Context, userID int) (*User, error) {
	query := `
		SELECT u.user_id, u.username, u.password_hash, COALESCE(u.email, ''), u.status, u.role,
		       u.plan_id, p.plan_name, u.created_at
		FROM users u
		LEFT JOIN subscription_plans p ON p.plan_id = u.plan_id
		WHERE u.user_id = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&u.UserID, &u.Username, &u.PasswordHash, &u.Email, &u.Status, &u.Role,
		&u.PlanID, &u.PlanName, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (user_id=%d): %w", userID, err)
	}
	return &u, nil
}

// Exists проверяет существование пользователя.
func (r *Repository) Exists(ctx context.Context, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования: %w", err)
	}
	return exists, nil
}

// UpdateStatus меняет статус аккаунта (active/banned).
func (r *Repository) UpdateStatus(ctx context.Context, userID int, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2 WHERE user_id = $1`, userID, status)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// UpdateRole меняет роль пользователя.
func (r *Repository) UpdateRole(ctx context.Context, userID int, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE user_id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("ошибка обновления роли: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// Delete удаляет пользователя. Инвентарь и балансы удаляются каскадом,
// но если пользователь всё ещё владелец созданных ассетов —
// внешний ключ RESTRICT не даст удалить (common.ErrRowInUse).
func (r *Repository) Delete(ctx context.Context, userID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.ErrRowInUse
		}
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}
