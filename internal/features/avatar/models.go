// Package avatar управляет конфигурациями аватаров: именованными
// наборами экипировки, где каждому слоту сопоставлен предмет
// из инвентаря игрока.
// models.go описывает структуры таблиц avatar_configs и avatar_asset_mapping.
package avatar

import "encoding/json"

// Config — именованная конфигурация аватара пользователя.
type Config struct {
	ConfigID   int    `json:"configId" db:"config_id"`
	UserID     int    `json:"userId" db:"user_id"`
	ConfigName string `json:"configName" db:"config_name"`
}

// SlotAssignment — назначение предмета инвентаря на слот экипировки.
type SlotAssignment struct {
	InventoryID int    `json:"inventoryId"`
	Slot        string `json:"slot"`
}

// EquippedItem — развёрнутый предмет при загрузке конфигурации:
// слот плюс данные мастер-ассета и свойства конкретной копии.
type EquippedItem struct {
	Slot             string          `json:"slot"`
	AssetName        string          `json:"assetName"`
	StoragePath      string          `json:"storagePath"`
	CustomProperties json.RawMessage `json:"customProperties"`
}

// LoadedConfig — конфигурация с развёрнутой экипировкой.
type LoadedConfig struct {
	ConfigID   int             `json:"configId"`
	ConfigName string          `json:"configName"`
	Items      []*EquippedItem `json:"items"`
}
