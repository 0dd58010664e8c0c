package repository

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// SessionStore keyed storage of per-visitor sessions
type SessionStore interface {
	// Get returns nil, nil when the session does not exist (or has expired)
	Get(ctx context.Context, id string) (*entity.Session, error)

	// Save creates or replaces the session
	Save(ctx context.Context, session *entity.Session) error

	// Delete removes the session
	Delete(ctx context.Context, id string) error

	// Close releases the underlying resources
	Close() error
}
