// Package users — service.go содержит бизнес-логику работы с пользователями.
package users

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Store описывает операции репозитория, используемые сервисом.
type Store interface {
	GetByID(ctx context.Context, userID int) (*User, error)
	UpdateStatus(ctx context.Context, userID int, status string) error
	UpdateRole(ctx context.Context, userID int, role string) error
	Delete(ctx context.Context, userID int) error
}

// Service управляет пользователями.
type Service struct {
	store Store
}

// NewService создаёт сервис пользователей.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Profile возвращает профиль пользователя без чувствительных полей.
func (s *Service) Profile(ctx context.Context, userID int) (*Profile, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Status:   u.Status,
		Role:     u.Role,
		Plan:     u.PlanName,
	}, nil
}

// SetStatus меняет статус аккаунта (бан/разбан).
func (s *Service) SetStatus(ctx context.Context, userID int, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: неизвестный статус %q", common.ErrValidation, status)
	}
	if err := s.store.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "status": status}).Info("Статус пользователя изменён")
	return nil
}

// SetRole меняет роль пользователя.
func (s *Service) SetRole(ctx context.Context, userID int, role string) error {
	if !ValidRole(role) {
		return fmt.Errorf("%w: неизвестная роль %q", common.ErrValidation, role)
	}
	if err := s.store.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "role": role}).Info("Роль пользователя изменена")
	return nil
}

// Delete удаляет пользователя. Если он ещё владеет созданными ассетами —
// удаление блокируется (политика: сперва передать или удалить ассеты).
func (s *Service) Delete(ctx context.Context, userID int) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Пользователь удалён")
	return nil
}
