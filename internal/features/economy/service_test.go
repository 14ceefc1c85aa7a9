package economy

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"serotonyl.ru/oasis-backend/internal/common"
)

// fakeStore повторяет семантику репозитория в памяти: списание строго
// последовательное, дубликат копии отклоняется.
type fakeStore struct {
	balances map[int]map[int]decimal.Decimal // userID -> currencyID -> amount
	assets   map[int]bool                    // assetID -> доступен для покупки
	owned    map[int]map[int]bool            // userID -> assetID
	nextInv  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		balances: map[int]map[int]decimal.Decimal{},
		assets:   map[int]bool{},
		owned:    map[int]map[int]bool{},
	}
}

func (f *fakeStore) ListBalances(ctx context.Context, userID int) ([]*Balance, error) {
	var result []*Balance
	for _, amount := range f.balances[userID] {
		result = append(result, &Balance{Amount: amount})
	}
	return result, nil
}

func (f *fakeStore) Purchase(ctx context.Context, userID, assetID, currencyID int, price decimal.Decimal) (*PurchaseResult, error) {
	balance, ok := f.balances[userID][currencyID]
	if !ok {
		return nil, common.ErrInsufficientBalance
	}
	if !f.assets[assetID] {
		return nil, common.ErrAssetUnavailable
	}
	if f.owned[userID][assetID] {
		return nil, common.ErrAlreadyOwned
	}
	if balance.LessThan(price) {
		return nil, common.ErrInsufficientBalance
	}

	newBalance := balance.Sub(price)
	f.balances[userID][currencyID] = newBalance
	if f.owned[userID] == nil {
		f.owned[userID] = map[int]bool{}
	}
	f.owned[userID][assetID] = true
	f.nextInv++
	return &PurchaseResult{InventoryID: f.nextInv, AssetID: assetID, Spent: price, NewBalance: newBalance}, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	store.assets[10] = true
	store.balances[1] = map[int]decimal.Decimal{1: decimal.NewFromInt(100)}
	return NewService(store), store
}

func TestPurchaseExactBalanceEndsAtZero(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	result, err := svc.Purchase(ctx, 1, 10, 1, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !result.NewBalance.IsZero() {
		t.Fatalf("expected zero balance, got %s", result.NewBalance)
	}
	if !store.owned[1][10] {
		t.Fatal("expected exactly one inventory copy")
	}
}

func TestSecondPurchaseOfSameAssetConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.Purchase(ctx, 1, 10, 1, decimal.NewFromInt(30)); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if _, err := svc.Purchase(ctx, 1, 10, 1, decimal.NewFromInt(30)); !errors.Is(err, common.ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestPurchaseErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.Purchase(ctx, 1, 10, 1, decimal.NewFromInt(-5)); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("negative price: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Purchase(ctx, 1, 404, 1, decimal.NewFromInt(10)); !errors.Is(err, common.ErrAssetUnavailable) {
		t.Fatalf("missing asset: expected ErrAssetUnavailable, got %v", err)
	}
	if _, err := svc.Purchase(ctx, 1, 10, 99, decimal.NewFromInt(10)); !errors.Is(err, common.ErrInsufficientBalance) {
		t.Fatalf("no balance row: expected ErrInsufficientBalance, got %v", err)
	}
	if _, err := svc.Purchase(ctx, 1, 10, 1, decimal.NewFromInt(101)); !errors.Is(err, common.ErrInsufficientBalance) {
		t.Fatalf("price above balance: expected ErrInsufficientBalance, got %v", err)
	}
}

func TestBalancesReturnsEmptySliceNotNil(t *testing.T) {
	svc, _ := newTestService()

	balances, err := svc.Balances(context.Background(), 777)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if balances == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(balances) != 0 {
		t.Fatalf("expected no balances, got %d", len(balances))
	}
}
