// Package economy — repository.go выполняет операции с балансами,
// типами валют и покупками.
//
// Purchase — одна транзакция: блокировка строки баланса FOR UPDATE,
// проверка доступности ассета и владения, списание и выдача в инвентарь.
// Блокировка сериализует параллельные покупки одного пользователя,
// поэтому баланс не может уйти в минус, а дубликат ловится до вставки.
package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"serotonyl.ru/oasis-backend/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListBalances возвращает все балансы пользователя с названиями валют.
func (r *Repository) ListBalances(ctx context.Context, userID int) ([]*Balance, error) {
	query := `
		SELECT ct.currency_name, ct.abbreviation, ub.amount
		FROM user_balances ub
		JOIN currency_types ct ON ct.currency_id = ub.currency_id
		WHERE ub.user_id = $1
		ORDER BY ct.currency_name
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения балансов (user_id=%d): %w", userID, err)
	}
	defer rows.Close()

	var result []*Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.CurrencyName, &b.Abbreviation, &b.Amount); err != nil {
			return nil, fmt.Errorf("ошибка сканирования баланса: %w", err)
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

// Purchase выполняет покупку ассета в одной транзакции.
// Цена приходит от рынка (клиента), у мастер-ассета своей цены нет.
func (r *Repository) Purchase(ctx context.Context, userID, assetID, currencyID int, price decimal.Decimal) (*PurchaseResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции покупки: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем баланс первым: это точка сериализации
	// параллельных покупок одного пользователя.
	var balance decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT amount FROM user_balances
		WHERE user_id = $1 AND currency_id = $2
		FOR UPDATE
	`, userID, currencyID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("ошибка чтения баланса: %w", err)
	}

	// Купить можно только одобренный публичный ассет.
	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_assets
			WHERE asset_id = $1 AND is_public = TRUE AND status = 'Approved'
		)
	`, assetID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ассета: %w", err)
	}
	if !exists {
		return nil, common.ErrAssetUnavailable
	}

	var owned bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM player_asset_inventory WHERE user_id = $1 AND master_asset_id = $2
		)
	`, userID, assetID).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки инвентаря: %w", err)
	}
	if owned {
		return nil, common.ErrAlreadyOwned
	}

	if balance.LessThan(price) {
		return nil, common.ErrInsufficientBalance
	}

	newBalance := balance.Sub(price)
	if _, err := tx.Exec(ctx, `
		UPDATE user_balances SET amount = $3
		WHERE user_id = $1 AND currency_id = $2
	`, userID, currencyID, newBalance); err != nil {
		return nil, fmt.Errorf("ошибка списания средств: %w", err)
	}

	var inventoryID int
	err = tx.QueryRow(ctx, `
		INSERT INTO player_asset_inventory (user_id, master_asset_id, custom_properties)
		VALUES ($1, $2, '{}'::jsonb)
		RETURNING inventory_id
	`, userID, assetID).Scan(&inventoryID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyOwned
		}
		return nil, fmt.Errorf("ошибка выдачи ассета в инвентарь: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации покупки: %w", err)
	}

	return &PurchaseResult{
		InventoryID: inventoryID,
		AssetID:     assetID,
		Spent:       price,
		NewBalance:  newBalance,
	}, nil
}

// ListCurrencies возвращает все типы валют.
func (r *Repository) ListCurrencies(ctx context.Context) ([]*CurrencyType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT currency_id, currency_name, abbreviation, is_premium FROM currency_types ORDER BY currency_id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения типов валют: %w", err)
	}
	defer rows.Close()

	var result []*CurrencyType
	for rows.Next() {
		var c CurrencyType
		if err := rows.Scan(&c.CurrencyID, &c.CurrencyName, &c.Abbreviation, &c.IsPremium); err != nil {
			return nil, fmt.Errorf("ошибка сканирования типа валюты: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// GetCurrency возвращает тип валюты по ID.
func (r *Repository) GetCurrency(ctx context.Context, currencyID int) (*CurrencyType, error) {
	var c CurrencyType
	err := r.db.QueryRow(ctx,
		`SELECT currency_id, currency_name, abbreviation, is_premium FROM currency_types WHERE currency_id = $1`,
		currencyID,
	).Scan(&c.CurrencyID, &c.CurrencyName, &c.Abbreviation, &c.IsPremium)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("ошибка чтения типа валюты (currency_id=%d): %w", currencyID, err)
	}
	return &c, nil
}

// CreateCurrency добавляет тип валюты.
func (r *Repository) CreateCurrency(ctx context.Context, name, abbreviation string, isPremium bool) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO currency_types (currency_name, abbreviation, is_premium) VALUES ($1, $2, $3) RETURNING currency_id`,
		name, abbreviation, isPremium,
	).Scan(&id)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return 0, common.ErrDuplicate
		}
		return 0, fmt.Errorf("ошибка создания типа валюты: %w", err)
	}
	return id, nil
}

// UpdateCurrency обновляет название, аббревиатуру и признак
// премиальности валюты.
func (r *Repository) UpdateCurrency(ctx context.Context, c *CurrencyType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE currency_types SET currency_name = $2, abbreviation = $3, is_premium = $4 WHERE currency_id = $1`,
		c.CurrencyID, c.CurrencyName, c.Abbreviation, c.IsPremium,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrDuplicate
		}
		return fmt.Errorf("ошибка обновления типа валюты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrCurrencyNotFound
	}
	return nil
}

// DeleteCurrency удаляет тип валюты. Валюту с существующими балансами
// удалить нельзя (внешний ключ RESTRICT).
func (r *Repository) DeleteCurrency(ctx context.Context, currencyID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM currency_types WHERE currency_id = $1`, currencyID)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.ErrRowInUse
		}
		return fmt.Errorf("ошибка удаления типа валюты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrCurrencyNotFound
	}
	return nil
}

// SetBalance административно выставляет баланс пользователя
// (upsert по паре пользователь+валюта).
func (r *Repository) SetBalance(ctx context.Context, userID, currencyID int, amount decimal.Decimal) error {
	query := `
		INSERT INTO user_balances (user_id, currency_id, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, currency_id) DO UPDATE SET amount = EXCLUDED.amount
	`
	if _, err := r.db.Exec(ctx, query, userID, currencyID, amount); err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("ошибка установки баланса: %w", err)
	}
	return nil
}

// DeleteBalance удаляет запись баланса пользователя в указанной валюте.
func (r *Repository) DeleteBalance(ctx context.Context, userID, currencyID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_balances WHERE user_id = $1 AND currency_id = $2`, userID, currencyID)
	if err != nil {
		return fmt.Errorf("ошибка удаления баланса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
