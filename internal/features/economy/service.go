// Package economy — service.go содержит бизнес-логику рынка.
package economy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/common"
)

// Store — операции хранилища, нужные сервису экономики.
type Store interface {
	ListBalances(ctx context.Context, userID int) ([]*Balance, error)
	Purchase(ctx context.Context, userID, assetID, currencyID int, price decimal.Decimal) (*PurchaseResult, error)
}

// Service — сервис балансов и покупок.
type Service struct {
	store Store
}

// NewService создаёт сервис экономики.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Balances возвращает все балансы пользователя. Пользователь без
// балансов получает пустой список, это не ошибка.
func (s *Service) Balances(ctx context.Context, userID int) ([]*Balance, error) {
	balances, err := s.store.ListBalances(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balances == nil {
		balances = []*Balance{}
	}
	return balances, nil
}

// Purchase покупает ассет за указанную валюту по цене рынка.
// Вся атомарность — внутри хранилища, сервис валидирует цену и логирует итог.
func (s *Service) Purchase(ctx context.Context, userID, assetID, currencyID int, price decimal.Decimal) (*PurchaseResult, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: цена не может быть отрицательной", common.ErrValidation)
	}

	result, err := s.store.Purchase(ctx, userID, assetID, currencyID, price)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"asset_id": assetID,
		"spent":    result.Spent.String(),
	}).Info("покупка ассета завершена")
	return result, nil
}
