package world

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/config"
)

func testWorldConfig(capacity int) *config.Config {
	return &config.Config{
		WorldMaxPlayersPerInstance: capacity,
		WorldInstanceTTL:           5 * time.Minute,
	}
}

// fakeStore повторяет семантику репозитория в памяти: Join выбирает
// наименее загруженную незаполненную инстанцию, Deregister идемпотентен.
type fakeStore struct {
	configs   map[int]*Config
	instances map[int]*Instance
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{configs: map[int]*Config{}, instances: map[int]*Instance{}}
}

func (f *fakeStore) GetConfig(ctx context.Context, worldID int) (*Config, error) {
	c, ok := f.configs[worldID]
	if !ok {
		return nil, common.ErrWorldConfigNotFound
	}
	return c, nil
}

func (f *fakeStore) RegisterInstance(ctx context.Context, worldID int, ipAddress string, port int) (*Instance, error) {
	if _, ok := f.configs[worldID]; !ok {
		return nil, common.ErrWorldConfigNotFound
	}
	f.nextID++
	inst := &Instance{InstanceID: f.nextID, WorldID: worldID, IPAddress: ipAddress, Port: port}
	f.instances[inst.InstanceID] = inst
	return inst, nil
}

func (f *fakeStore) UpdatePlayerCount(ctx context.Context, instanceID, count int) error {
	inst, ok := f.instances[instanceID]
	if !ok {
		return common.ErrInstanceNotFound
	}
	inst.CurrentPlayers = count
	inst.LastSeenAt = time.Now()
	return nil
}

func (f *fakeStore) Join(ctx context.Context, worldID, capacity int) (*Assignment, error) {
	var candidates []*Instance
	for _, inst := range f.instances {
		if inst.WorldID == worldID && inst.CurrentPlayers < capacity {
			candidates = append(candidates, inst)
		}
	}
	if len(candidates) == 0 {
		return nil, common.ErrNoCapacity
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CurrentPlayers < candidates[j].CurrentPlayers
	})
	chosen := candidates[0]
	chosen.CurrentPlayers++
	return &Assignment{
		IPAddress:  chosen.IPAddress,
		Port:       chosen.Port,
		InstanceID: chosen.InstanceID,
		WorldName:  f.configs[worldID].WorldName,
	}, nil
}

func (f *fakeStore) Leave(ctx context.Context, instanceID int) error {
	inst, ok := f.instances[instanceID]
	if !ok {
		return common.ErrInstanceNotFound
	}
	if inst.CurrentPlayers > 0 {
		inst.CurrentPlayers--
	}
	return nil
}

func (f *fakeStore) Deregister(ctx context.Context, instanceID int) error {
	delete(f.instances, instanceID)
	return nil
}

func (f *fakeStore) ReapStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	var reaped int64
	for id, inst := range f.instances {
		if inst.LastSeenAt.Before(cutoff) {
			delete(f.instances, id)
			reaped++
		}
	}
	return reaped, nil
}

func newTestService(capacity int) (*Service, *fakeStore) {
	store := newFakeStore()
	store.configs[1] = &Config{WorldID: 1, WorldName: "Oasis Plaza", ScenePath: "scenes/plaza", MaxPlayers: capacity}
	cfg := testWorldConfig(capacity)
	return NewService(store, cfg), store
}

func TestRegisterValidatesEndpoint(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(100)

	if _, err := svc.Register(ctx, 1, "not-an-ip", 7777); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("bad ip: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Register(ctx, 1, "10.0.0.5", 0); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("bad port: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Register(ctx, 404, "10.0.0.5", 7777); !errors.Is(err, common.ErrWorldConfigNotFound) {
		t.Fatalf("unknown world: expected ErrWorldConfigNotFound, got %v", err)
	}

	inst, err := svc.Register(ctx, 1, "10.0.0.5", 7777)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if inst.CurrentPlayers != 0 {
		t.Fatalf("new instance must start empty, got %d", inst.CurrentPlayers)
	}
}

func TestHeartbeatRejectsNegativeCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(100)

	inst, err := svc.Register(ctx, 1, "10.0.0.5", 7777)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Heartbeat(ctx, inst.InstanceID, -1); !errors.Is(err, common.ErrNegativePlayerCount) {
		t.Fatalf("expected ErrNegativePlayerCount, got %v", err)
	}
	if err := svc.Heartbeat(ctx, inst.InstanceID, 17); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if err := svc.Heartbeat(ctx, 404, 3); !errors.Is(err, common.ErrInstanceNotFound) {
		t.Fatalf("gone instance: expected ErrInstanceNotFound, got %v", err)
	}
}

func TestJoinPicksLeastLoadedAndRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(2)

	a, _ := svc.Register(ctx, 1, "10.0.0.1", 7777)
	b, _ := svc.Register(ctx, 1, "10.0.0.2", 7777)
	store.instances[a.InstanceID].CurrentPlayers = 1

	first, err := svc.Join(ctx, 1)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if first.InstanceID != b.InstanceID {
		t.Fatalf("expected least-loaded instance %d, got %d", b.InstanceID, first.InstanceID)
	}

	// Заполняем оба до лимита.
	if _, err := svc.Join(ctx, 1); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.Join(ctx, 1); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := svc.Join(ctx, 1); !errors.Is(err, common.ErrNoCapacity) {
		t.Fatalf("full world: expected ErrNoCapacity, got %v", err)
	}

	for _, inst := range store.instances {
		if inst.CurrentPlayers > 2 {
			t.Fatalf("capacity exceeded: %+v", inst)
		}
	}
}

func TestLeaveNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(100)

	inst, _ := svc.Register(ctx, 1, "10.0.0.1", 7777)
	if err := svc.Leave(ctx, inst.InstanceID); err != nil {
		t.Fatalf("leave on empty instance: %v", err)
	}
	if store.instances[inst.InstanceID].CurrentPlayers != 0 {
		t.Fatal("player count went negative")
	}
}

func TestDeregisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(100)

	inst, _ := svc.Register(ctx, 1, "10.0.0.1", 7777)
	if err := svc.Deregister(ctx, inst.InstanceID); err != nil {
		t.Fatalf("first deregister: %v", err)
	}
	if err := svc.Deregister(ctx, inst.InstanceID); err != nil {
		t.Fatalf("second deregister must also succeed: %v", err)
	}
	if len(store.instances) != 0 {
		t.Fatal("instance still registered")
	}
}

func TestReapStaleRemovesOnlySilentInstances(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(100)

	stale, _ := svc.Register(ctx, 1, "10.0.0.1", 7777)
	fresh, _ := svc.Register(ctx, 1, "10.0.0.2", 7777)
	store.instances[stale.InstanceID].LastSeenAt = time.Now().Add(-time.Hour)
	store.instances[fresh.InstanceID].LastSeenAt = time.Now()

	if err := svc.ReapStale(ctx); err != nil {
		t.Fatalf("reap: %v", err)
	}
	if _, ok := store.instances[stale.InstanceID]; ok {
		t.Fatal("stale instance survived the reaper")
	}
	if _, ok := store.instances[fresh.InstanceID]; !ok {
		t.Fatal("fresh instance was reaped")
	}
}
