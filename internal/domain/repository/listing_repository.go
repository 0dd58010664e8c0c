package repository

import (
	"context"
	"time"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// ListingRepository food listings
type ListingRepository interface {
	// Create stores the listing and fills in ID
	Create(ctx context.Context, listing *entity.FoodListing) error

	// CreateMany stores all listings in one transaction
	CreateMany(ctx context.Context, listings []*entity.FoodListing) error

	// GetByID returns ErrNotFound when missing
	GetByID(ctx context.Context, id int64) (*entity.FoodListing, error)

	// ListByRestaurant newest first
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]entity.FoodListing, error)

	// ListUnclaimed newest first, with restaurant name and address
	ListUnclaimed(ctx context.Context) ([]entity.FoodListing, error)

	// ListAll newest first, with restaurant name
	ListAll(ctx context.Context) ([]entity.FoodListing, error)

	// Claim marks the listing claimed by claimerID if it is still available and
	// fresh at now. Returns ErrNotFound or ErrListingUnavailable otherwise.
	Claim(ctx context.Context, listingID, claimerID int64, now time.Time) error
}
