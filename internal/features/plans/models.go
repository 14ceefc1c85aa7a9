// Package plans управляет тарифными планами подписки.
// План задаёт лимиты контента: количество ассетов, полигоны, размер файлов.
package plans

import "github.com/shopspring/decimal"

// Plan представляет тарифный план в базе данных.
type Plan struct {
	PlanID           int             `json:"planId" db:"plan_id"`
	PlanName         string          `json:"planName" db:"plan_name"`
	MaxAssetsAllowed int             `json:"maxAssetsAllowed" db:"max_assets_allowed"`
	MaxPolyCount     int             `json:"maxPolyCount" db:"max_poly_count"`
	MaxTextureSizeMB float32         `json:"maxTextureSizeMb" db:"max_texture_size_mb"`
	PriceMonthly     decimal.Decimal `json:"priceMonthly" db:"price_monthly"`
}
