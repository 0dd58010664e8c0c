package repository

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// ListingParser reads bulk listing uploads
type ListingParser interface {
	// ParseListings parses a spreadsheet upload
	ParseListings(ctx context.Context, data []byte, filename string) ([]entity.ListingDraft, error)
}
