// Package session stores visitor sessions (login info and chatbot state)
// behind repository.SessionStore.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

// StoreType selects a session store driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
	StoreTypeBolt   StoreType = "bolt"
)

// DefaultTTL used by the redis store when none is configured.
const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidConfig    = errors.New("invalid session store configuration")
	ErrInvalidStoreType = errors.New("invalid session store type")
)

// NewStore builds the driver named by storeType. Redis requires
// WithRedisClient, bolt requires WithBoltPath.
func NewStore(storeType StoreType, opts ...StoreOption) (repository.SessionStore, error) {
	cfg := &storeConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(cfg.ttl, cfg.now), nil

	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		ttl := cfg.ttl
		if ttl <= 0 {
			ttl = DefaultTTL
		}
		return newRedisStore(cfg.redisClient, ttl, cfg.now), nil

	case StoreTypeBolt:
		if cfg.boltPath == "" {
			return nil, ErrInvalidConfig
		}
		return newBoltStore(cfg.boltPath, cfg.ttl, cfg.now)

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStoreType, storeType)
	}
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: redis url is empty", ErrInvalidConfig)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// expired reports whether a session last touched at updated is past ttl.
func expired(updated, now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(updated) > ttl
}

// sweepDue reports whether a store should drop its expired sessions now.
// Sessions that are never read again would otherwise stay forever, so the
// stores sweep from Save at most once per ttl.
func sweepDue(last *time.Time, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || now.Sub(*last) < ttl {
		return false
	}
	*last = now
	return true
}

func stamp(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
