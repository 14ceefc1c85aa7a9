// Package world — service.go содержит бизнес-логику реестра миров:
// валидацию heartbeat-ов, балансировку подключений и очистку
// инстанций, переставших подавать признаки жизни.
package world

import (
	"context"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/config"
)

// Store — операции хранилища, нужные сервису миров.
type Store interface {
	GetConfig(ctx context.Context, worldID int) (*Config, error)
	RegisterInstance(ctx context.Context, worldID int, ipAddress string, port int) (*Instance, error)
	UpdatePlayerCount(ctx context.Context, instanceID, count int) error
	Join(ctx context.Context, worldID, capacity int) (*Assignment, error)
	Leave(ctx context.Context, instanceID int) error
	Deregister(ctx context.Context, instanceID int) error
	ReapStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// Service — сервис реестра миров и балансировки.
type Service struct {
	store Store
	cfg   *config.Config
}

// NewService создаёт сервис миров.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// GetConfig возвращает конфигурацию мира для загрузки сцены клиентом.
func (s *Service) GetConfig(ctx context.Context, worldID int) (*Config, error) {
	return s.store.GetConfig(ctx, worldID)
}

// Register регистрирует новую инстанцию игрового сервера.
func (s *Service) Register(ctx context.Context, worldID int, ipAddress string, port int) (*Instance, error) {
	if net.ParseIP(ipAddress) == nil {
		return nil, fmt.Errorf("%w: некорректный ip-адрес", common.ErrValidation)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%w: некорректный порт", common.ErrValidation)
	}

	inst, err := s.store.RegisterInstance(ctx, worldID, ipAddress, port)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"instance_id": inst.InstanceID,
		"world_id":    worldID,
		"endpoint":    fmt.Sprintf("%s:%d", ipAddress, port),
	}).Info("инстанция мира зарегистрирована")
	return inst, nil
}

// Heartbeat принимает от игрового сервера актуальное число игроков.
func (s *Service) Heartbeat(ctx context.Context, instanceID, playerCount int) error {
	if playerCount < 0 {
		return common.ErrNegativePlayerCount
	}
	return s.store.UpdatePlayerCount(ctx, instanceID, playerCount)
}

// Join подбирает игроку наименее загруженную инстанцию мира.
// Лимит мест берётся из конфигурации сервиса.
func (s *Service) Join(ctx context.Context, worldID int) (*Assignment, error) {
	a, err := s.store.Join(ctx, worldID, s.cfg.WorldMaxPlayersPerInstance)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"world_id":    worldID,
		"instance_id": a.InstanceID,
	}).Debug("игрок направлен на инстанцию")
	return a, nil
}

// Leave уменьшает счётчик игроков инстанции.
func (s *Service) Leave(ctx context.Context, instanceID int) error {
	return s.store.Leave(ctx, instanceID)
}

// Deregister снимает инстанцию с регистрации. Повторный вызов безопасен.
func (s *Service) Deregister(ctx context.Context, instanceID int) error {
	if err := s.store.Deregister(ctx, instanceID); err != nil {
		return err
	}
	log.WithField("instance_id", instanceID).Info("инстанция мира снята с регистрации")
	return nil
}

// ReapStale удаляет инстанции, не присылавшие heartbeat дольше
// настроенного TTL. Вызывается планировщиком.
func (s *Service) ReapStale(ctx context.Context) error {
	reaped, err := s.store.ReapStale(ctx, s.cfg.WorldInstanceTTL)
	if err != nil {
		return err
	}
	if reaped > 0 {
		log.WithField("count", reaped).Warn("удалены мёртвые инстанции миров")
	}
	return nil
}
