package friends

import (
	"context"
	"errors"
	"testing"

	"serotonyl.ru/oasis-backend/internal/common"
)

// fakeStore хранит связи в памяти и повторяет поведение уникального
// индекса по неупорядоченной паре.
type fakeStore struct {
	rows []*Friendship
}

func (f *fakeStore) pair(a, b int) *Friendship {
	for _, r := range f.rows {
		if (r.RequesterID == a && r.TargetID == b) || (r.RequesterID == b && r.TargetID == a) {
			return r
		}
	}
	return nil
}

func (f *fakeStore) Create(ctx context.Context, requesterID, targetID int) error {
	if f.pair(requesterID, targetID) != nil {
		return common.ErrFriendshipExists
	}
	f.rows = append(f.rows, &Friendship{
		FriendshipID: len(f.rows) + 1,
		RequesterID:  requesterID,
		TargetID:     targetID,
		Status:       StatusPending,
	})
	return nil
}

func (f *fakeStore) Accept(ctx context.Context, targetID, requesterID int) error {
	for _, r := range f.rows {
		if r.RequesterID == requesterID && r.TargetID == targetID && r.Status == StatusPending {
			r.Status = StatusAccepted
			return nil
		}
	}
	return common.ErrFriendshipNotFound
}

func (f *fakeStore) List(ctx context.Context, userID int) ([]*FriendEntry, error) {
	var result []*FriendEntry
	for _, r := range f.rows {
		switch userID {
		case r.RequesterID:
			result = append(result, &FriendEntry{UserID: r.TargetID, Status: r.Status})
		case r.TargetID:
			result = append(result, &FriendEntry{UserID: r.RequesterID, Status: r.Status, Incoming: r.Status == StatusPending})
		}
	}
	return result, nil
}

func (f *fakeStore) Delete(ctx context.Context, userID, otherID int) error {
	for i, r := range f.rows {
		if (r.RequesterID == userID && r.TargetID == otherID) || (r.RequesterID == otherID && r.TargetID == userID) {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrFriendshipNotFound
}

type fakeUsers struct {
	existing map[int]bool
}

func (f *fakeUsers) Exists(ctx context.Context, userID int) (bool, error) {
	return f.existing[userID], nil
}

func newTestService(ids ...int) (*Service, *fakeStore) {
	existing := map[int]bool{}
	for _, id := range ids {
		existing[id] = true
	}
	store := &fakeStore{}
	return NewService(store, &fakeUsers{existing: existing}), store
}

func TestSendRequestValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2)

	if err := svc.SendRequest(ctx, 1, 1); !errors.Is(err, common.ErrSelfFriendRequest) {
		t.Fatalf("self request: expected ErrSelfFriendRequest, got %v", err)
	}
	if err := svc.SendRequest(ctx, 1, 404); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("missing target: expected ErrUserNotFound, got %v", err)
	}
}

func TestDuplicateAndReversedRequestRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2)

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := svc.SendRequest(ctx, 1, 2); !errors.Is(err, common.ErrFriendshipExists) {
		t.Fatalf("duplicate: expected ErrFriendshipExists, got %v", err)
	}
	// Встречная заявка — та же неупорядоченная пара.
	if err := svc.SendRequest(ctx, 2, 1); !errors.Is(err, common.ErrFriendshipExists) {
		t.Fatalf("reversed: expected ErrFriendshipExists, got %v", err)
	}
}

func TestAcceptedFriendshipIsSymmetric(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2)

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.AcceptRequest(ctx, 2, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}

	forOne, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list for requester: %v", err)
	}
	forTwo, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("list for target: %v", err)
	}

	if len(forOne) != 1 || forOne[0].UserID != 2 || forOne[0].Status != StatusAccepted {
		t.Fatalf("requester side: %+v", forOne)
	}
	if len(forTwo) != 1 || forTwo[0].UserID != 1 || forTwo[0].Status != StatusAccepted {
		t.Fatalf("target side: %+v", forTwo)
	}
}

func TestAcceptOnlyByTarget(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1, 2)

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send: %v", err)
	}
	// Отправитель не может подтвердить собственную заявку.
	if err := svc.AcceptRequest(ctx, 1, 2); !errors.Is(err, common.ErrFriendshipNotFound) {
		t.Fatalf("expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestRemoveWorksInEitherDirection(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(1, 2)

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send: %v", err)
	}
	// Адресат отклоняет заявку тем же удалением.
	if err := svc.Remove(ctx, 2, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatal("expected the pair to be gone")
	}
	if err := svc.Remove(ctx, 2, 1); !errors.Is(err, common.ErrFriendshipNotFound) {
		t.Fatalf("second remove: expected ErrFriendshipNotFound, got %v", err)
	}
}
