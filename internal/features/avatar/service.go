// Package avatar — service.go содержит бизнес-логику конфигураций:
// проверку владения всеми предметами до любой записи.
package avatar

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Store — операции хранилища, нужные сервису аватаров.
type Store interface {
	CountOwnedItems(ctx context.Context, userID int, inventoryIDs []int) (int, error)
	Save(ctx context.Context, userID int, configName string, items []SlotAssignment) (int, error)
	Load(ctx context.Context, userID, configID int) (*LoadedConfig, error)
	List(ctx context.Context, userID int) ([]*Config, error)
}

// Service — сервис конфигураций аватара.
type Service struct {
	store Store
}

// NewService создаёт сервис аватаров.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save сохраняет конфигурацию. Если хоть один предмет не принадлежит
// пользователю — отклоняется весь запрос, без частичной записи.
func (s *Service) Save(ctx context.Context, userID int, configName string, items []SlotAssignment) (int, error) {
	if configName == "" {
		return 0, fmt.Errorf("%w: configName обязателен", common.ErrValidation)
	}

	seen := make(map[int]struct{}, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if item.Slot == "" {
			return 0, fmt.Errorf("%w: пустой слот экипировки", common.ErrValidation)
		}
		if _, ok := seen[item.InventoryID]; !ok {
			seen[item.InventoryID] = struct{}{}
			ids = append(ids, item.InventoryID)
		}
	}

	if len(ids) > 0 {
		owned, err := s.store.CountOwnedItems(ctx, userID, ids)
		if err != nil {
			return 0, err
		}
		if owned != len(ids) {
			return 0, common.ErrInventoryNotOwned
		}
	}

	configID, err := s.store.Save(ctx, userID, configName, items)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"config_id": configID,
		"items":     len(items),
	}).Info("конфигурация аватара сохранена")
	return configID, nil
}

// Load возвращает конфигурацию с развёрнутой экипировкой.
func (s *Service) Load(ctx context.Context, userID, configID int) (*LoadedConfig, error) {
	return s.store.Load(ctx, userID, configID)
}

// List возвращает конфигурации пользователя.
func (s *Service) List(ctx context.Context, userID int) ([]*Config, error) {
	configs, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []*Config{}
	}
	return configs, nil
}
