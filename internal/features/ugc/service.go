// Package ugc — service.go содержит проверки лимитов тарифного плана
// для загрузки и приобретения ассетов.
package ugc

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Store — операции хранилища, нужные сервису UGC.
type Store interface {
	GetPlanLimits(ctx context.Context, userID int) (*PlanLimits, error)
	CountCreated(ctx context.Context, userID int) (int, error)
	CountInventory(ctx context.Context, userID int) (int, error)
	CreateWithCopy(ctx context.Context, a *Asset) (*Asset, error)
	GetPublicAsset(ctx context.Context, assetID int) (*Asset, error)
	InsertCopy(ctx context.Context, userID, assetID int) (int, error)
}

// UploadRequest — параметры загрузки мастер-ассета.
type UploadRequest struct {
	AssetName     string  `json:"assetName"`
	AssetType     string  `json:"assetType"`
	StoragePath   string  `json:"storagePath"`
	PolyCount     int     `json:"polyCount"`
	FileSizeMB    float64 `json:"fileSizeMb"`
	RequestPublic bool    `json:"requestPublic"`
}

// Service — сервис загрузки и приобретения ассетов.
type Service struct {
	store Store
}

// NewService создаёт сервис UGC.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Upload загружает мастер-ассет с проверкой лимитов плана создателя:
// число созданных ассетов, полигоны и размер файла. При нарушении
// любого лимита состояние базы не меняется.
func (s *Service) Upload(ctx context.Context, userID int, req *UploadRequest) (*Asset, error) {
	if req.AssetName == "" || req.StoragePath == "" {
		return nil, fmt.Errorf("%w: assetName и storagePath обязательны", common.ErrValidation)
	}
	if req.PolyCount < 0 || req.FileSizeMB < 0 {
		return nil, fmt.Errorf("%w: отрицательные характеристики ассета", common.ErrValidation)
	}

	limits, err := s.store.GetPlanLimits(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CountCreated(ctx, userID)
	if err != nil {
		return nil, err
	}
	if created >= limits.MaxAssetsAllowed {
		return nil, common.ErrAssetLimitReached
	}
	if req.PolyCount > limits.MaxPolyCount || req.FileSizeMB > limits.MaxTextureSizeMB {
		return nil, common.ErrAssetQualityExceeded
	}

	// Публичность только через модерацию: запрошенная публикация
	// даёт статус Pending, каталог откроется после одобрения.
	status := StatusPrivate
	if req.RequestPublic {
		status = StatusPending
	}

	asset, err := s.store.CreateWithCopy(ctx, &Asset{
		AssetName:   req.AssetName,
		AssetType:   req.AssetType,
		StoragePath: req.StoragePath,
		PolyCount:   req.PolyCount,
		FileSizeMB:  req.FileSizeMB,
		Status:      status,
		IPOwnerID:   userID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"asset_id": asset.AssetID,
		"owner_id": userID,
		"status":   status,
	}).Info("мастер-ассет загружен")
	return asset, nil
}

// Acquire добавляет копию публичного ассета в инвентарь пользователя
// с проверкой лимита инвентаря по тарифному плану.
func (s *Service) Acquire(ctx context.Context, userID, assetID int) (int, error) {
	asset, err := s.store.GetPublicAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}

	limits, err := s.store.GetPlanLimits(ctx, userID)
	if err != nil {
		return 0, err
	}
	inventory, err := s.store.CountInventory(ctx, userID)
	if err != nil {
		return 0, err
	}
	if inventory >= limits.MaxAssetsAllowed {
		return 0, common.ErrInventoryFull
	}

	inventoryID, err := s.store.InsertCopy(ctx, userID, asset.AssetID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id":      userID,
		"asset_id":     assetID,
		"inventory_id": inventoryID,
	}).Info("ассет приобретён из каталога")
	return inventoryID, nil
}
