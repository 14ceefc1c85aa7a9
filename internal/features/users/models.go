// Package users управляет пользователями платформы: регистрацией,
// статусами, ролями и профилями.
// models.go описывает структуры данных для работы с таблицей users.
package users

import "time"

// Статусы аккаунта.
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// Роли пользователей. Роль определяет доступ к группам эндпоинтов:
// admin — админка, server — регистрация игровых серверов.
const (
	RoleGamer  = "gamer"
	RoleAdmin  = "admin"
	RoleServer = "server"
)

// User представляет пользователя в базе данных.
type User struct {
	UserID       int       `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // Argon2id в кодированном формате
	Email        string    `db:"email"`
	Status       string    `db:"status"`  // active, banned, ...
	Role         string    `db:"role"`    // gamer, admin, server
	PlanID       *int      `db:"plan_id"` // Тарифный план (может быть nil)
	PlanName     *string   `db:"-"`       // Название плана (подтягивается JOIN-ом)
	CreatedAt    time.Time `db:"created_at"`
}

// Profile — профиль пользователя для ответа API (без хеша пароля).
type Profile struct {
	UserID   int     `json:"userId"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Status   string  `json:"status"`
	Role     string  `json:"role"`
	Plan     *string `json:"plan"`
}

// ValidStatus проверяет, что статус из запроса нам известен.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusBanned
}

// ValidRole проверяет, что роль из запроса нам известна.
func ValidRole(r string) bool {
	return r == RoleGamer || r == RoleAdmin || r == RoleServer
}
