package ugc

import (
	"context"
	"errors"
	"testing"

	"serotonyl.ru/oasis-backend/internal/common"
)

type fakeStore struct {
	limits       map[int]*PlanLimits
	createdCount map[int]int
	invCount     map[int]int
	assets       map[int]*Asset

	created   []*Asset
	copies    []int
	nextInvID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		limits:       map[int]*PlanLimits{},
		createdCount: map[int]int{},
		invCount:     map[int]int{},
		assets:       map[int]*Asset{},
	}
}

func (f *fakeStore) GetPlanLimits(ctx context.Context, userID int) (*PlanLimits, error) {
	l, ok := f.limits[userID]
	if !ok {
		return nil, common.ErrPlanNotFound
	}
	return l, nil
}

func (f *fakeStore) CountCreated(ctx context.Context, userID int) (int, error) {
	return f.createdCount[userID], nil
}

func (f *fakeStore) CountInventory(ctx context.Context, userID int) (int, error) {
	return f.invCount[userID], nil
}

func (f *fakeStore) CreateWithCopy(ctx context.Context, a *Asset) (*Asset, error) {
	a.AssetID = len(f.created) + 1
	f.created = append(f.created, a)
	f.createdCount[a.IPOwnerID]++
	f.invCount[a.IPOwnerID]++
	return a, nil
}

func (f *fakeStore) GetPublicAsset(ctx context.Context, assetID int) (*Asset, error) {
	a, ok := f.assets[assetID]
	if !ok || !a.IsPublic || a.Status != StatusApproved {
		return nil, common.ErrAssetUnavailable
	}
	return a, nil
}

func (f *fakeStore) InsertCopy(ctx context.Context, userID, assetID int) (int, error) {
	f.nextInvID++
	f.copies = append(f.copies, assetID)
	f.invCount[userID]++
	return f.nextInvID, nil
}

func validUpload() *UploadRequest {
	return &UploadRequest{
		AssetName:   "crystal sword",
		AssetType:   "mesh",
		StoragePath: "assets/sword.glb",
		PolyCount:   1200,
		FileSizeMB:  4,
	}
}

func TestUploadRejectedAtQuotaThenSucceedsBelowIt(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.limits[1] = &PlanLimits{MaxAssetsAllowed: 10, MaxPolyCount: 50000, MaxTextureSizeMB: 16}
	store.createdCount[1] = 10
	svc := NewService(store)

	if _, err := svc.Upload(ctx, 1, validUpload()); !errors.Is(err, common.ErrAssetLimitReached) {
		t.Fatalf("at quota: expected ErrAssetLimitReached, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("rejected upload must not insert anything")
	}

	store.createdCount[1] = 9
	asset, err := svc.Upload(ctx, 1, validUpload())
	if err != nil {
		t.Fatalf("below quota: %v", err)
	}
	if len(store.created) != 1 || asset.AssetID == 0 {
		t.Fatalf("expected exactly one created asset, got %d", len(store.created))
	}
}

func TestUploadEnforcesQualityCeilings(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.limits[1] = &PlanLimits{MaxAssetsAllowed: 10, MaxPolyCount: 1000, MaxTextureSizeMB: 2}
	svc := NewService(store)

	tooManyPolys := validUpload()
	tooManyPolys.PolyCount = 1001
	if _, err := svc.Upload(ctx, 1, tooManyPolys); !errors.Is(err, common.ErrAssetQualityExceeded) {
		t.Fatalf("poly count: expected ErrAssetQualityExceeded, got %v", err)
	}

	tooBig := validUpload()
	tooBig.PolyCount = 500
	tooBig.FileSizeMB = 2.5
	if _, err := svc.Upload(ctx, 1, tooBig); !errors.Is(err, common.ErrAssetQualityExceeded) {
		t.Fatalf("file size: expected ErrAssetQualityExceeded, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("rejected uploads must not insert anything")
	}
}

func TestUploadStatusDependsOnPublicityRequest(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.limits[1] = &PlanLimits{MaxAssetsAllowed: 10, MaxPolyCount: 50000, MaxTextureSizeMB: 16}
	svc := NewService(store)

	private, err := svc.Upload(ctx, 1, validUpload())
	if err != nil {
		t.Fatalf("upload private: %v", err)
	}
	if private.Status != StatusPrivate || private.IsPublic {
		t.Fatalf("expected Private hidden asset, got %s public=%v", private.Status, private.IsPublic)
	}

	req := validUpload()
	req.AssetName = "public sword"
	req.RequestPublic = true
	pending, err := svc.Upload(ctx, 1, req)
	if err != nil {
		t.Fatalf("upload public: %v", err)
	}
	if pending.Status != StatusPending || pending.IsPublic {
		t.Fatalf("publicity request must give Pending and wait for moderation, got %s public=%v",
			pending.Status, pending.IsPublic)
	}
}

func TestUploadWithoutPlan(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Upload(context.Background(), 99, validUpload()); !errors.Is(err, common.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestAcquireChecksInventoryQuota(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.limits[2] = &PlanLimits{MaxAssetsAllowed: 3, MaxPolyCount: 50000, MaxTextureSizeMB: 16}
	store.assets[10] = &Asset{AssetID: 10, Status: StatusApproved, IsPublic: true}
	store.invCount[2] = 3
	svc := NewService(store)

	if _, err := svc.Acquire(ctx, 2, 10); !errors.Is(err, common.ErrInventoryFull) {
		t.Fatalf("full inventory: expected ErrInventoryFull, got %v", err)
	}

	store.invCount[2] = 2
	invID, err := svc.Acquire(ctx, 2, 10)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if invID == 0 || len(store.copies) != 1 {
		t.Fatalf("expected one inventory copy, got %d", len(store.copies))
	}
}

func TestAcquireRejectsNonPublicAsset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.limits[2] = &PlanLimits{MaxAssetsAllowed: 10, MaxPolyCount: 50000, MaxTextureSizeMB: 16}
	store.assets[11] = &Asset{AssetID: 11, Status: StatusPending, IsPublic: false}
	svc := NewService(store)

	if _, err := svc.Acquire(ctx, 2, 11); !errors.Is(err, common.ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
	if _, err := svc.Acquire(ctx, 2, 404); !errors.Is(err, common.ErrAssetUnavailable) {
		t.Fatalf("missing asset: expected ErrAssetUnavailable, got %v", err)
	}
}
