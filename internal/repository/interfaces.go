package repository

import (
	"context"
	"time"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByEmail looks a user up by email. With includeDeleted the lookup
	// also returns soft-deleted rows so provider flows can resurrect them.
	GetByEmail(ctx context.Context, email string, includeDeleted bool) (*domain.User, error)
	GetPasswordHashByID(ctx context.Context, id uuid.UUID) (string, error)
	Update(ctx context.Context, user *domain.User) error
	// Restore clears the soft-delete marker and writes the user's current
	// field values back, keeping the original id.
	Restore(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// SessionStore is the TTL cache holding at most one refresh session per user.
// Put overwrites unconditionally; Delete is idempotent.
type SessionStore interface {
	Put(ctx context.Context, userID uuid.UUID, session *domain.RefreshSession, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (*domain.RefreshSession, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Session SessionStore
}
