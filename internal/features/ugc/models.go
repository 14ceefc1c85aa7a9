// Package ugc управляет пользовательскими 3D-ассетами: загрузкой
// с проверкой лимитов тарифного плана, публичным каталогом,
// приобретением копий и модерацией.
//
// Мастер-ассет — запись каталога, принадлежащая создателю (IP-владельцу).
// Копия в инвентаре — отдельная строка player_asset_inventory со своими
// custom_properties; один мастер-ассет может быть у многих игроков.
package ugc

import (
	"encoding/json"
	"time"
)

// Статусы мастер-ассета.
const (
	StatusPrivate  = "Private"
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

// Asset — мастер-ассет каталога.
type Asset struct {
	AssetID     int       `json:"assetId" db:"asset_id"`
	AssetName   string    `json:"assetName" db:"asset_name"`
	AssetType   string    `json:"assetType" db:"asset_type"`
	StoragePath string    `json:"storagePath" db:"storage_path"`
	PolyCount   int       `json:"polyCount" db:"poly_count"`
	FileSizeMB  float64   `json:"fileSizeMb" db:"file_size_mb"`
	Status      string    `json:"status" db:"status"`
	IsPublic    bool      `json:"isPublic" db:"is_public"`
	IPOwnerID   int       `json:"ipOwnerId" db:"ip_owner_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CatalogEntry — публичный ассет с именем создателя.
type CatalogEntry struct {
	AssetID     int    `json:"assetId" db:"asset_id"`
	AssetName   string `json:"assetName" db:"asset_name"`
	AssetType   string `json:"assetType" db:"asset_type"`
	StoragePath string `json:"storagePath" db:"storage_path"`
	OwnerName   string `json:"ownerName" db:"owner_name"`
}

// InventoryItem — копия мастер-ассета в инвентаре игрока.
type InventoryItem struct {
	InventoryID      int             `json:"inventoryId" db:"inventory_id"`
	UserID           int             `json:"userId" db:"user_id"`
	MasterAssetID    int             `json:"masterAssetId" db:"master_asset_id"`
	CustomProperties json.RawMessage `json:"customProperties" db:"custom_properties"`
}

// PlanLimits — лимиты тарифного плана, влияющие на UGC.
type PlanLimits struct {
	MaxAssetsAllowed int     `db:"max_assets_allowed"`
	MaxPolyCount     int     `db:"max_poly_count"`
	MaxTextureSizeMB float64 `db:"max_texture_size_mb"`
}
