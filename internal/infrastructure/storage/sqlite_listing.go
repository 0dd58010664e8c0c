package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

const listingSelect = `
SELECT l.id, l.restaurant_id, l.food_item, l.quantity, l.status, l.fresh_until,
       l.claimed_by_id, l.timestamp, COALESCE(u.name, ''), COALESCE(u.address, '')
FROM food_listings l
LEFT JOIN users u ON u.id = l.restaurant_id`

type sqliteListingRepository struct {
	db *sql.DB
}

// NewSQLiteListingRepository food_listings table repository
func NewSQLiteListingRepository(db *sql.DB) repository.ListingRepository {
	return &sqliteListingRepository{db: db}
}

func (s *sqliteListingRepository) Create(ctx context.Context, listing *entity.FoodListing) error {
	return s.CreateMany(ctx, []*entity.FoodListing{listing})
}

func (s *sqliteListingRepository) CreateMany(ctx context.Context, listings []*entity.FoodListing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO food_listings (restaurant_id, food_item, quantity, status, fresh_until, timestamp) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		if l.Status == "" {
			l.Status = entity.ListingAvailable
		}
		res, err := stmt.ExecContext(ctx, l.RestaurantID, l.FoodItem, l.Quantity, string(l.Status), l.FreshUntil.UTC(), l.Timestamp.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert listing %q: %w", l.FoodItem, err)
		}
		if l.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read listing id: %w", err)
		}
	}
	return tx.Commit()
}

func (s *sqliteListingRepository) GetByID(ctx context.Context, id int64) (*entity.FoodListing, error) {
	row := s.db.QueryRowContext(ctx, listingSelect+` WHERE l.id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return l, err
}

func (s *sqliteListingRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]entity.FoodListing, error) {
	return s.list(ctx, listingSelect+` WHERE l.restaurant_id = ? ORDER BY l.timestamp DESC, l.id DESC`, restaurantID)
}

func (s *sqliteListingRepository) ListUnclaimed(ctx context.Context) ([]entity.FoodListing, error) {
	return s.list(ctx, listingSelect+` WHERE l.status != ? ORDER BY l.timestamp DESC, l.id DESC`, string(entity.ListingClaimed))
}

func (s *sqliteListingRepository) ListAll(ctx context.Context) ([]entity.FoodListing, error) {
	return s.list(ctx, listingSelect+` ORDER BY l.timestamp DESC, l.id DESC`)
}

func (s *sqliteListingRepository) Claim(ctx context.Context, listingID, claimerID int64, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		status     string
		freshUntil time.Time
	)
	err = tx.QueryRowContext(ctx, `SELECT status, fresh_until FROM food_listings WHERE id = ?`, listingID).
		Scan(&status, &freshUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load listing: %w", err)
	}

	if entity.ListingStatus(status) != entity.ListingAvailable || now.After(freshUntil) {
		return repository.ErrListingUnavailable
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE food_listings SET status = ?, claimed_by_id = ? WHERE id = ?`,
		string(entity.ListingClaimed), claimerID, listingID); err != nil {
		return fmt.Errorf("failed to claim listing: %w", err)
	}
	return tx.Commit()
}

func (s *sqliteListingRepository) list(ctx context.Context, query string, args ...any) ([]entity.FoodListing, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []entity.FoodListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func scanListing(row scanner) (*entity.FoodListing, error) {
	var (
		l         entity.FoodListing
		status    string
		claimedBy sql.NullInt64
	)
	err := row.Scan(&l.ID, &l.RestaurantID, &l.FoodItem, &l.Quantity, &status, &l.FreshUntil,
		&claimedBy, &l.Timestamp, &l.RestaurantName, &l.RestaurantAddress)
	if err != nil {
		return nil, err
	}
	l.Status = entity.ListingStatus(status)
	l.ClaimedByID = claimedBy.Int64
	return &l, nil
}
