// Package economy управляет виртуальными валютами, балансами игроков
// и покупками ассетов на внутриигровом рынке.
// models.go описывает структуры таблиц currency_types и user_balances.
package economy

import "github.com/shopspring/decimal"

// CurrencyType — тип виртуальной валюты (например Gold / GLD).
// Премиальная валюта покупается за реальные деньги, обычная зарабатывается.
type CurrencyType struct {
	CurrencyID   int    `json:"currencyId" db:"currency_id"`
	CurrencyName string `json:"currencyName" db:"currency_name"`
	Abbreviation string `json:"abbreviation" db:"abbreviation"`
	IsPremium    bool   `json:"isPremium" db:"is_premium"`
}

// Balance — баланс пользователя в одной валюте.
type Balance struct {
	CurrencyName string          `json:"currencyName" db:"currency_name"`
	Abbreviation string          `json:"abbreviation" db:"abbreviation"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
}

// PurchaseResult — итог успешной покупки ассета.
type PurchaseResult struct {
	InventoryID int             `json:"inventoryId"`
	AssetID     int             `json:"assetId"`
	Spent       decimal.Decimal `json:"spent"`
	NewBalance  decimal.Decimal `json:"newBalance"`
}
