package approval

import (
	"context"
	"errors"
	"testing"
)

type record struct {
	ID       string
	Approved bool
}

var errRecordNotFound = errors.New("record not found")

type fakeStore struct {
	setApprovedFn func(ctx context.Context, id string) (record, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeStore) SetApproved(ctx context.Context, id string) (record, error) {
	if f.setApprovedFn != nil {
		return f.setApprovedFn(ctx, id)
	}

	return record{}, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

func TestDecide_Approve(t *testing.T) {
	store := &fakeStore{
		setApprovedFn: func(ctx context.Context, id string) (record, error) {
			return record{ID: id, Approved: true}, nil
		},
	}

	outcome, err := Decide[record](context.Background(), store, "r1", true)

	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}

	if !outcome.Approved || outcome.Removed {
		t.Fatalf("expected approved outcome, got %+v", outcome)
	}

	if !outcome.Entity.Approved {
		t.Fatalf("expected entity marked approved")
	}

	if outcome.Message != "approved" {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
}

func TestDecide_ApproveIsIdempotent(t *testing.T) {
	calls := 0

	store := &fakeStore{
		setApprovedFn: func(ctx context.Context, id string) (record, error) {
			calls++
			// already-approved entity: store returns current state
			return record{ID: id, Approved: true}, nil
		},
	}

	for i := 0; i < 2; i++ {
		outcome, err := Decide[record](context.Background(), store, "r1", true)

		if err != nil {
			t.Fatalf("Decide #%d error: %v", i+1, err)
		}

		if !outcome.Approved {
			t.Fatalf("Decide #%d: expected approved outcome", i+1)
		}
	}

	if calls != 2 {
		t.Fatalf("expected 2 store calls, got %d", calls)
	}
}

func TestDecide_RejectRemoves(t *testing.T) {
	deleted := ""

	store := &fakeStore{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	outcome, err := Decide[record](context.Background(), store, "r1", false)

	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}

	if !outcome.Removed || outcome.Approved {
		t.Fatalf("expected removed outcome, got %+v", outcome)
	}

	if deleted != "r1" {
		t.Fatalf("expected delete of r1, got %q", deleted)
	}

	if outcome.Entity != (record{}) {
		t.Fatalf("expected zero entity on removal, got %+v", outcome.Entity)
	}
}

func TestDecide_UnknownID(t *testing.T) {
	store := &fakeStore{
		setApprovedFn: func(ctx context.Context, id string) (record, error) {
			return record{}, errRecordNotFound
		},
		deleteFn: func(ctx context.Context, id string) error {
			return errRecordNotFound
		},
	}

	if _, err := Decide[record](context.Background(), store, "missing", true); !errors.Is(err, errRecordNotFound) {
		t.Fatalf("approve: expected errRecordNotFound, got %v", err)
	}

	if _, err := Decide[record](context.Background(), store, "missing", false); !errors.Is(err, errRecordNotFound) {
		t.Fatalf("reject: expected errRecordNotFound, got %v", err)
	}
}
