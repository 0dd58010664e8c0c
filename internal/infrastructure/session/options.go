package session

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreOption configures a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
	boltPath    string
	ttl         time.Duration
	now         func() time.Time
}

// WithRedisClient sets the client of the redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithBoltPath sets the database file of the bolt store.
func WithBoltPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.boltPath = path
	}
}

// WithTTL idle lifetime of a session. Zero keeps sessions forever in the
// memory and bolt stores and means DefaultTTL for redis.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}
