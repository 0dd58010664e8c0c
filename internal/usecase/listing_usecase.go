package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/freshness"
	"github.com/foodpulse/foodpulse/internal/metrics"
)

// ListingUseCase food listings and the per-role dashboard
type ListingUseCase interface {
	AddFood(ctx context.Context, restaurant *entity.User, foodItem, quantity string) (*entity.FoodListing, error)
	Import(ctx context.Context, restaurant *entity.User, data []byte, filename string) ([]entity.FoodListing, error)
	Claim(ctx context.Context, claimer *entity.User, listingID int64) error
	Dashboard(ctx context.Context, user *entity.User) (*entity.Dashboard, error)
}

type listingUseCase struct {
	listings  repository.ListingRepository
	users     repository.UserRepository
	estimator repository.FreshnessEstimator
	parser    repository.ListingParser
	now       func() time.Time
}

// NewListingUseCase estimator may be nil, every listing then gets
// freshness.DefaultHours.
func NewListingUseCase(
	listings repository.ListingRepository,
	users repository.UserRepository,
	estimator repository.FreshnessEstimator,
	parser repository.ListingParser,
	now func() time.Time,
) ListingUseCase {
	if now == nil {
		now = time.Now
	}
	return &listingUseCase{
		listings:  listings,
		users:     users,
		estimator: estimator,
		parser:    parser,
		now:       now,
	}
}

func (u *listingUseCase) AddFood(ctx context.Context, restaurant *entity.User, foodItem, quantity string) (*entity.FoodListing, error) {
	if restaurant.AccountType != entity.AccountRestaurant {
		return nil, ErrForbidden
	}
	foodItem = strings.TrimSpace(foodItem)
	quantity = strings.TrimSpace(quantity)
	if foodItem == "" || quantity == "" {
		return nil, fmt.Errorf("%w: food item and quantity are required", ErrInvalidInput)
	}

	listing := u.newListing(restaurant.ID, foodItem, quantity, u.estimate(ctx, foodItem))
	if err := u.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}
	metrics.ListingsCreated.WithLabelValues("form").Inc()
	return listing, nil
}

func (u *listingUseCase) Import(ctx context.Context, restaurant *entity.User, data []byte, filename string) ([]entity.FoodListing, error) {
	if restaurant.AccountType != entity.AccountRestaurant {
		return nil, ErrForbidden
	}
	drafts, err := u.parser.ParseListings(ctx, data, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	listings := make([]*entity.FoodListing, 0, len(drafts))
	for _, d := range drafts {
		hours := d.FreshHours
		if !freshness.Valid(hours) {
			hours = u.estimate(ctx, d.FoodItem)
		}
		listings = append(listings, u.newListing(restaurant.ID, d.FoodItem, d.Quantity, hours))
	}
	if err := u.listings.CreateMany(ctx, listings); err != nil {
		return nil, fmt.Errorf("failed to save listings: %w", err)
	}
	metrics.ListingsCreated.WithLabelValues("import").Add(float64(len(listings)))

	out := make([]entity.FoodListing, len(listings))
	for i, l := range listings {
		out[i] = *l
	}
	return out, nil
}

func (u *listingUseCase) Claim(ctx context.Context, claimer *entity.User, listingID int64) error {
	if !claimer.AccountType.IsRecipient() {
		return ErrForbidden
	}
	return u.listings.Claim(ctx, listingID, claimer.ID, u.now())
}

func (u *listingUseCase) Dashboard(ctx context.Context, user *entity.User) (*entity.Dashboard, error) {
	if !user.ProfileComplete {
		return nil, ErrProfileIncomplete
	}

	dash := &entity.Dashboard{AccountType: user.AccountType}
	var err error
	switch {
	case user.AccountType == entity.AccountRestaurant:
		dash.Listings, err = u.listings.ListByRestaurant(ctx, user.ID)
	case user.AccountType.IsRecipient():
		dash.Listings, err = u.listings.ListUnclaimed(ctx)
	case user.AccountType == entity.AccountAdmin:
		dash.Restaurants, err = u.contacts(ctx, entity.AccountRestaurant)
		if err == nil {
			dash.NGOs, err = u.contacts(ctx, entity.AccountNGO, entity.AccountOldAgeHome)
		}
		if err == nil {
			dash.Listings, err = u.listings.ListAll(ctx)
		}
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	now := u.now()
	for i := range dash.Listings {
		dash.Listings[i].CurrentStatus = dash.Listings[i].StatusAt(now)
	}
	if dash.Listings == nil {
		dash.Listings = []entity.FoodListing{}
	}
	return dash, nil
}

func (u *listingUseCase) contacts(ctx context.Context, types ...entity.AccountType) ([]entity.Contact, error) {
	users, err := u.users.ListByType(ctx, types...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Contact, len(users))
	for i, usr := range users {
		out[i] = usr.Contact()
	}
	return out, nil
}

// estimate falls back to freshness.DefaultHours on any failure.
func (u *listingUseCase) estimate(ctx context.Context, foodItem string) int {
	if u.estimator == nil {
		return freshness.DefaultHours
	}
	hours, err := u.estimator.EstimateHours(ctx, foodItem)
	if err != nil {
		log.Warn().Err(err).Str("food_item", foodItem).Msg("freshness estimate failed, using default")
		return freshness.DefaultHours
	}
	if !freshness.Valid(hours) {
		log.Warn().Int("hours", hours).Str("food_item", foodItem).Msg("freshness estimate out of range, using default")
		return freshness.DefaultHours
	}
	return hours
}

func (u *listingUseCase) newListing(restaurantID int64, foodItem, quantity string, hours int) *entity.FoodListing {
	now := u.now()
	return &entity.FoodListing{
		RestaurantID: restaurantID,
		FoodItem:     foodItem,
		Quantity:     quantity,
		Status:       entity.ListingAvailable,
		FreshUntil:   now.Add(time.Duration(hours) * time.Hour),
		Timestamp:    now,
	}
}
