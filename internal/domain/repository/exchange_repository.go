package repository

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// ExchangeLog durable log of chatbot exchanges
type ExchangeLog interface {
	// Save appends the exchange
	Save(ctx context.Context, exchange entity.Exchange) error

	// ListBySession oldest first, the newest limit entries (limit <= 0 means all)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]entity.Exchange, error)

	// ClearSession forgets the log of a session
	ClearSession(ctx context.Context, sessionID string) error
}
