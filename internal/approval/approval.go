// Package approval implements the pending → approved / pending → removed
// transition shared by users, events, sermons and gallery items.
package approval

import "context"

// Store is the slice of a repository the workflow needs. SetApproved must be
// idempotent: marking an already-approved entity returns its current state.
// Both SetApproved and Delete report the kind's not-found sentinel for an
// unknown (or already removed) id.
type Store[T any] interface {
	SetApproved(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
}

// Outcome is the result of a decision. Entity is the zero value when the
// decision removed the record.
type Outcome[T any] struct {
	Approved bool   `json:"approved"`
	Removed  bool   `json:"removed"`
	Entity   T      `json:"entity,omitempty"`
	Message  string `json:"message"`
}

// Decide applies an admin decision to a pending entity. approved=true moves
// it to the approved state; approved=false deletes it outright (rejection is
// removal, no soft-delete trail is kept).
func Decide[T any](ctx context.Context, s Store[T], id string, approved bool) (Outcome[T], error) {
	if approved {
		e, err := s.SetApproved(ctx, id)
		if err != nil {
			return Outcome[T]{}, err
		}

		return Outcome[T]{Approved: true, Entity: e, Message: "approved"}, nil
	}

	if err := s.Delete(ctx, id); err != nil {
		return Outcome[T]{}, err
	}

	return Outcome[T]{Removed: true, Message: "rejected and removed"}, nil
}
