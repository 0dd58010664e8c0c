package repository

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// UserRepository registered accounts
type UserRepository interface {
	// Create stores the user and fills in its ID. Returns ErrEmailTaken on duplicates.
	Create(ctx context.Context, user *entity.User) error

	// GetByID returns ErrNotFound when missing
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// GetByEmail returns ErrNotFound when missing
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateProfile sets address and phone and marks the profile complete
	UpdateProfile(ctx context.Context, id int64, address, phone string) error

	// ListByType users of any of the given account types
	ListByType(ctx context.Context, types ...entity.AccountType) ([]entity.User, error)
}
