package world

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func routed(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// Игровой сервер регистрируется телом {worldConfigId, ipAddress, port}.
func TestRegisterDecodesClientBody(t *testing.T) {
	svc, store := newTestService(100)
	handler := NewHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/World/register",
		strings.NewReader(`{"worldConfigId":1,"ipAddress":"10.0.0.5","port":7777}`))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body)
	}
	if len(store.instances) != 1 {
		t.Fatalf("expected one registered instance, got %d", len(store.instances))
	}
	for _, inst := range store.instances {
		if inst.WorldID != 1 || inst.IPAddress != "10.0.0.5" || inst.Port != 7777 {
			t.Fatalf("instance fields lost in decoding: %+v", inst)
		}
	}
}

// Heartbeat читает playerCount из тела и применяет его к инстанции;
// ответ 200 с сообщением.
func TestHeartbeatDecodesPlayerCount(t *testing.T) {
	svc, store := newTestService(100)
	handler := NewHandler(svc)

	inst, err := svc.Register(context.Background(), 1, "10.0.0.5", 7777)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := routed(httptest.NewRequest(http.MethodPut, "/api/World/update/1",
		strings.NewReader(`{"playerCount":42}`)), "instanceId", strconv.Itoa(inst.InstanceID))
	rec := httptest.NewRecorder()
	handler.Heartbeat(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}
	if got := store.instances[inst.InstanceID].CurrentPlayers; got != 42 {
		t.Fatalf("player count = %d, want 42", got)
	}
}

func TestLeaveRespondsOK(t *testing.T) {
	svc, _ := newTestService(100)
	handler := NewHandler(svc)

	inst, err := svc.Register(context.Background(), 1, "10.0.0.5", 7777)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := routed(httptest.NewRequest(http.MethodPost, "/api/World/leave/1", nil),
		"instanceId", strconv.Itoa(inst.InstanceID))
	rec := httptest.NewRecorder()
	handler.Leave(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}
}
