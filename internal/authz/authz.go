// Package authz holds the single authorization decision function for the API.
// Every role/ownership rule lives here so route handlers never compare role
// strings themselves.
package authz

import (
	"errors"

	"github.com/gracecommunity/churchhub/internal/domain/user"
)

// Actor is the identity attached to a request after credential verification.
// The zero value is an unauthenticated caller.
type Actor struct {
	ID            string
	Role          user.Role
	Approved      bool
	Authenticated bool
}

type Action int

const (
	// ActionReadPublic covers approved-content reads, contact submission,
	// registration and login. Always permitted.
	ActionReadPublic Action = iota
	// ActionSubmitContent is creating an event, sermon or gallery item.
	ActionSubmitContent
	// ActionManageOwn is reading, editing or deleting a specific submission;
	// the resource owner id must be passed to Can.
	ActionManageOwn
	// ActionApprove is an approval workflow decision. Admin only.
	ActionApprove
	// ActionManageUsers covers coordinator creation, pending-user review and
	// role promotion. Admin only.
	ActionManageUsers
	// ActionViewStats is the admin dashboard aggregates. Admin only.
	ActionViewStats
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrAccountPending  = errors.New("account pending approval")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Can decides whether the actor may perform action. ownerID is the creator of
// the target resource and only matters for ActionManageOwn; pass "" otherwise.
//
// Rule precedence: public actions first, then authentication, then the
// pending-account gate, then admin-overrides-all, then per-role rules.
func Can(a Actor, action Action, ownerID string) error {
	if action == ActionReadPublic {
		return nil
	}

	if !a.Authenticated {
		return ErrUnauthenticated
	}

	// A valid credential for an unapproved account is not enough for any
	// protected action, and the caller must be able to tell the two apart.
	if !a.Approved {
		return ErrAccountPending
	}

	if a.Role == user.RoleAdmin {
		return nil
	}

	switch action {
	case ActionSubmitContent:
		if a.Role == user.RoleCoordinator {
			return nil
		}
	case ActionManageOwn:
		if a.Role == user.RoleCoordinator && ownerID != "" && ownerID == a.ID {
			return nil
		}
	}

	return ErrForbidden
}
