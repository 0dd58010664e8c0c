package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/freshness"
)

// DefaultModel used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrConfigurationMissing no API key was supplied.
var ErrConfigurationMissing = errors.New("gemini api key is not configured")

// FreshnessEstimator estimates shelf life with a Gemini model.
type FreshnessEstimator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

var _ repository.FreshnessEstimator = (*FreshnessEstimator)(nil)

// NewFreshnessEstimator creates the client; model "" means DefaultModel.
func NewFreshnessEstimator(ctx context.Context, apiKey, model string) (*FreshnessEstimator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrConfigurationMissing
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	gm := client.GenerativeModel(model)
	gm.SetTemperature(0.2)
	gm.SetMaxOutputTokens(16)
	gm.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(freshness.Instruction)},
	}

	return &FreshnessEstimator{
		client: client,
		model:  gm,
		sem:    make(chan struct{}, 3),
		delay:  350 * time.Millisecond,
	}, nil
}

// EstimateHours asks the model and parses its integer answer.
func (g *FreshnessEstimator) EstimateHours(ctx context.Context, foodItem string) (int, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, genai.Text(freshness.Question(foodItem)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate estimate: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return 0, errors.New("no response candidates")
	}
	return freshness.ParseHours(extractText(resp))
}

// extractText joins the text parts of the first candidate that has content.
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
		break
	}
	return result.String()
}

// acquire caps concurrent calls at cap(sem) and spaces them by delay.
func (g *FreshnessEstimator) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	release := func() { <-g.sem }

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if wait := g.delay - now.Sub(g.last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				release()
				return nil, ctx.Err()
			}
			now = time.Now()
		}
	}
	g.last = now
	return release, nil
}

// Close releases the underlying client.
func (g *FreshnessEstimator) Close() error {
	return g.client.Close()
}
