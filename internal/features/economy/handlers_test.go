package economy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"serotonyl.ru/oasis-backend/internal/common"
)

func purchaseRequestFor(t *testing.T, userID int, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/Currency/purchase", strings.NewReader(body))
	ctx := common.WithClaims(context.Background(), &common.Claims{UserID: userID, Role: "gamer"})
	return req.WithContext(ctx)
}

func TestPurchaseHandlerStatusMapping(t *testing.T) {
	svc, store := newTestService()
	store.owned[2] = map[int]bool{10: true}
	store.balances[2] = map[int]decimal.Decimal{1: decimal.NewFromInt(5)}
	store.balances[3] = map[int]decimal.Decimal{1: decimal.NewFromInt(500)}
	handler := NewHandler(svc, nil)

	tests := []struct {
		name       string
		userID     int
		body       string
		wantStatus int
	}{
		{"success", 3, `{"assetId":10,"currencyId":1,"price":"40"}`, http.StatusOK},
		{"asset unavailable", 1, `{"assetId":404,"currencyId":1,"price":"40"}`, http.StatusNotFound},
		{"already owned", 2, `{"assetId":10,"currencyId":1,"price":"1"}`, http.StatusConflict},
		{"insufficient funds", 1, `{"assetId":10,"currencyId":1,"price":"100500"}`, http.StatusBadRequest},
		{"malformed body", 1, `{"assetId":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Purchase(rec, purchaseRequestFor(t, tt.userID, tt.body))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestPurchaseHandlerRequiresAuth(t *testing.T) {
	svc, _ := newTestService()
	handler := NewHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/Currency/purchase",
		strings.NewReader(`{"assetId":10,"currencyId":1,"price":"1"}`))
	rec := httptest.NewRecorder()
	handler.Purchase(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPurchaseHandlerResponseBody(t *testing.T) {
	svc, _ := newTestService()
	handler := NewHandler(svc, nil)

	rec := httptest.NewRecorder()
	handler.Purchase(rec, purchaseRequestFor(t, 1, `{"assetId":10,"currencyId":1,"price":"100"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}

	var result PurchaseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.AssetID != 10 || !result.NewBalance.IsZero() {
		t.Fatalf("unexpected result: %+v", result)
	}
}

// Признак премиальности валюты должен доходить до клиента и приниматься
// из тела запроса админского CRUD.
func TestCurrencyTypeCarriesPremiumFlag(t *testing.T) {
	payload, err := json.Marshal(CurrencyType{CurrencyID: 2, CurrencyName: "Gems", Abbreviation: "GEM", IsPremium: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(payload), `"isPremium":true`) {
		t.Fatalf("premium flag missing in payload: %s", payload)
	}

	var req currencyRequest
	if err := json.Unmarshal([]byte(`{"currencyName":"Gems","abbreviation":"GEM","isPremium":true}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.IsPremium {
		t.Fatal("premium flag lost when decoding request body")
	}
}
