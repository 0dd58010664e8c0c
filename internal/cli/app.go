// Package cli holds the foodpulse subcommands and the wiring they share.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/config"
	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/infrastructure/gemini"
	"github.com/foodpulse/foodpulse/internal/infrastructure/groq"
	"github.com/foodpulse/foodpulse/internal/infrastructure/parser"
	"github.com/foodpulse/foodpulse/internal/infrastructure/session"
	"github.com/foodpulse/foodpulse/internal/infrastructure/storage"
	"github.com/foodpulse/foodpulse/internal/logger"
	"github.com/foodpulse/foodpulse/internal/usecase"
)

// app holds every dependency of the running service.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	closers  []io.Closer
	chat     usecase.ChatUseCase
	accounts usecase.AccountUseCase
	listings usecase.ListingUseCase
	sessions usecase.SessionUseCase
}

// setup loads and validates the configuration and initialises logging.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logCloser, err := logger.Init(cfg.Log())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logCloser, nil
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	client, err := groq.NewClient(cfg.GroqAPIKey,
		groq.WithURL(cfg.GroqAPIURL),
		groq.WithModel(cfg.ChatModel),
		groq.WithTimeout(cfg.RemoteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("GROQ_API_KEY: %w", err)
	}

	faq, err := chatbot.LoadFAQ(cfg.FAQPath)
	if err != nil {
		return nil, err
	}

	if a.db, err = storage.Open(ctx, cfg.DatabasePath); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db)

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)

	estimator, err := a.newEstimator(ctx)
	if err != nil {
		return nil, err
	}

	users := storage.NewSQLiteUserRepository(a.db)
	a.sessions = usecase.NewSessionUseCase(store)
	a.chat = usecase.NewChatUseCase(
		faq,
		client,
		a.sessions,
		storage.NewSQLiteExchangeLog(a.db, cfg.ExchangeLogSize),
		chatbot.Options{
			HistorySize:    cfg.HistorySize,
			RateLimitDelay: cfg.RateLimitDelay,
			DailyLimit:     cfg.DailyLimit,
			Clock:          time.Now,
		},
	)
	a.accounts = usecase.NewAccountUseCase(users)
	a.listings = usecase.NewListingUseCase(
		storage.NewSQLiteListingRepository(a.db),
		users,
		estimator,
		parser.NewExcelListingParser(),
		time.Now,
	)

	log.Info().
		Str("database", cfg.DatabasePath).
		Str("sessions", cfg.SessionDriver).
		Str("freshness", cfg.FreshnessProvider).
		Int("faq_entries", faq.Len()).
		Msg("application wired")
	return a, nil
}

func newSessionStore(ctx context.Context, cfg *config.Config) (repository.SessionStore, error) {
	opts := []session.StoreOption{session.WithTTL(cfg.SessionTTL)}
	switch session.StoreType(cfg.SessionDriver) {
	case session.StoreTypeRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithRedisClient(client))
	case session.StoreTypeBolt:
		opts = append(opts, session.WithBoltPath(cfg.BoltPath))
	}
	return session.NewStore(session.StoreType(cfg.SessionDriver), opts...)
}

// newEstimator returns nil when estimation is disabled.
func (a *app) newEstimator(ctx context.Context) (repository.FreshnessEstimator, error) {
	switch a.cfg.FreshnessProvider {
	case "gemini":
		est, err := gemini.NewFreshnessEstimator(ctx, a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, est)
		return est, nil
	case "groq":
		return groq.NewFreshnessEstimator(a.cfg.GroqAPIKey,
			groq.WithURL(a.cfg.GroqAPIURL),
			groq.WithModel(a.cfg.FreshnessModel),
			groq.WithTimeout(a.cfg.RemoteTimeout),
		)
	default:
		return nil, nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
