package repository

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// CompletionClient hosted chat-completion model used when the FAQ has no answer
type CompletionClient interface {
	// Complete answers query using history as conversation context. Failures are
	// reported through Completion.Outcome, never as an error.
	Complete(ctx context.Context, query, history string) entity.Completion
}

// FreshnessEstimator estimates how long a food item stays safe to eat
type FreshnessEstimator interface {
	// EstimateHours returns the shelf life of foodItem in hours
	EstimateHours(ctx context.Context, foodItem string) (int, error)
}
