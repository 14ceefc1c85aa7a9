// Package auth — service.go содержит бизнес-логику регистрации и входа.
package auth

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/config"
	"serotonyl.ru/oasis-backend/internal/features/users"
)

// UserStore — операции с пользователями, нужные аутентификации.
type UserStore interface {
	Create(ctx context.Context, u *users.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

// PlanStore — поиск тарифного плана для новых пользователей.
type PlanStore interface {
	GetIDByName(ctx context.Context, name string) (int, error)
}

// Service выполняет регистрацию, вход и выпуск токенов.
type Service struct {
	users  UserStore
	plans  PlanStore
	tokens *TokenManager
	cfg    *config.Config
}

// NewService создаёт сервис аутентификации.
func NewService(userStore UserStore, planStore PlanStore, tokens *TokenManager, cfg *config.Config) *Service {
	return &Service{users: userStore, plans: planStore, tokens: tokens, cfg: cfg}
}

// RegisterResult — результат успешной регистрации.
type RegisterResult struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// LoginResult — результат успешного входа.
type LoginResult struct {
	UserID   int     `json:"userId"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Token    string  `json:"token"`
	Plan     *string `json:"plan"`
}

// Register создаёт нового пользователя с планом по умолчанию.
// Новые пользователи получают роль gamer и статус active.
func (s *Service) Register(ctx context.Context, username, password, email string) (*RegisterResult, error) {
	if username == "" || password == "" || email == "" {
		return nil, fmt.Errorf("%w: username, password и email обязательны", common.ErrValidation)
	}

	// План по умолчанию обязан существовать (seed-данные)
	planID, err := s.plans.GetIDByName(ctx, s.cfg.DefaultPlanName)
	if err != nil {
		return nil, fmt.Errorf("план по умолчанию %q не найден: %w", s.cfg.DefaultPlanName, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID, err := s.users.Create(ctx, &users.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Status:       users.StatusActive,
		Role:         users.RoleGamer,
		PlanID:       &planID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "username": username}).Info("Пользователь зарегистрирован")

	return &RegisterResult{UserID: userID, Username: username, Message: "регистрация успешна"}, nil
}

// Login проверяет учётные данные и выпускает токен.
// На «нет такого пользователя» и «неверный пароль» отвечаем одинаково,
// чтобы не раскрывать существование аккаунта.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	return s.login(ctx, username, password, false)
}

// LoginAdmin — вход для админ-панели: принимаются только аккаунты с ролью admin.
func (s *Service) LoginAdmin(ctx context.Context, username, password string) (*LoginResult, error) {
	return s.login(ctx, username, password, true)
}

func (s *Service) login(ctx context.Context, username, password string, adminOnly bool) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username и password обязательны", common.ErrValidation)
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if adminOnly && u.Role != users.RoleAdmin {
		return nil, common.ErrInvalidCredentials
	}
	if u.Status != users.StatusActive {
		return nil, fmt.Errorf("аккаунт в статусе %q: %w", u.Status, common.ErrAccountNotActive)
	}
	if !VerifyPassword(password, u.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.UserID, u.Username, u.Role)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": u.UserID, "role": u.Role}).Debug("Вход выполнен")

	return &LoginResult{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
		Token:    token,
		Plan:     u.PlanName,
	}, nil
}
