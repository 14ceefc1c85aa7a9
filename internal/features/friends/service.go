// Package friends — service.go содержит бизнес-логику социального графа.
package friends

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Store — операции хранилища, нужные сервису друзей.
type Store interface {
	Create(ctx context.Context, requesterID, targetID int) error
	Accept(ctx context.Context, targetID, requesterID int) error
	List(ctx context.Context, userID int) ([]*FriendEntry, error)
	Delete(ctx context.Context, userID, otherID int) error
}

// UserChecker проверяет существование пользователя.
type UserChecker interface {
	Exists(ctx context.Context, userID int) (bool, error)
}

// Service — сервис заявок и дружб.
type Service struct {
	store Store
	users UserChecker
}

// NewService создаёт сервис друзей.
func NewService(store Store, users UserChecker) *Service {
	return &Service{store: store, users: users}
}

// SendRequest отправляет заявку в друзья.
func (s *Service) SendRequest(ctx context.Context, requesterID, targetID int) error {
	if requesterID == targetID {
		return common.ErrSelfFriendRequest
	}

	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrUserNotFound
	}

	if err := s.store.Create(ctx, requesterID, targetID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"requester_id": requesterID,
		"target_id":    targetID,
	}).Info("заявка в друзья отправлена")
	return nil
}

// AcceptRequest подтверждает входящую заявку.
func (s *Service) AcceptRequest(ctx context.Context, userID, requesterID int) error {
	if err := s.store.Accept(ctx, userID, requesterID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"requester_id": requesterID,
		"target_id":    userID,
	}).Info("заявка в друзья подтверждена")
	return nil
}

// List возвращает все связи пользователя.
func (s *Service) List(ctx context.Context, userID int) ([]*FriendEntry, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*FriendEntry{}
	}
	return entries, nil
}

// Remove удаляет связь: работает и для отклонения заявки,
// и для удаления из друзей.
func (s *Service) Remove(ctx context.Context, userID, otherID int) error {
	return s.store.Delete(ctx, userID, otherID)
}
