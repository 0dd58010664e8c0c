package groq

import (
	"context"

	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/freshness"
)

// DefaultFreshnessModel larger model used for shelf-life estimates.
const DefaultFreshnessModel = "llama-3.3-70b-versatile"

// FreshnessEstimator asks a Groq model for a food item's shelf life.
type FreshnessEstimator struct {
	client *Client
}

// NewFreshnessEstimator defaults the model to DefaultFreshnessModel; opts
// may override it.
func NewFreshnessEstimator(apiKey string, opts ...Option) (*FreshnessEstimator, error) {
	client, err := NewClient(apiKey, append([]Option{WithModel(DefaultFreshnessModel)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &FreshnessEstimator{client: client}, nil
}

var _ repository.FreshnessEstimator = (*FreshnessEstimator)(nil)

// EstimateHours returns an error when the model does not answer with a plain integer.
func (e *FreshnessEstimator) EstimateHours(ctx context.Context, foodItem string) (int, error) {
	text, err := e.client.send(ctx, chatRequest{
		Model: e.client.model,
		Messages: []message{
			{Role: "system", Content: freshness.Instruction},
			{Role: "user", Content: freshness.Question(foodItem)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return 0, err
	}
	return freshness.ParseHours(text)
}
