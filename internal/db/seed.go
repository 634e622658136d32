package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gracecommunity/churchhub/internal/config"
	"github.com/gracecommunity/churchhub/internal/domain/user"
	"github.com/gracecommunity/churchhub/internal/security"
)

// UserSeedStore is the slice of the users repository the seeder needs; both
// the postgres and the in-memory stores satisfy it.
type UserSeedStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureAdminUser creates the configured admin account if it does not exist
// yet. Without admin credentials in the environment this is a no-op.
func EnsureAdminUser(ctx context.Context, store UserSeedStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := store.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}

	now := time.Now().UTC()

	_, err = store.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Approved:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	return err
}
