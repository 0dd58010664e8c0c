package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

const keyPrefix = "foodpulse:session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func newRedisStore(client *redis.Client, ttl time.Duration, now func() time.Time) *redisStore {
	return &redisStore{client: client, ttl: ttl, now: now}
}

func (s *redisStore) key(id string) string {
	return keyPrefix + id
}

func (s *redisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	key := s.key(id)
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess entity.Session
	if err := sonic.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("session", id).Msg("failed to refresh session ttl")
	}
	return &sess, nil
}

func (s *redisStore) Save(ctx context.Context, sess *entity.Session) error {
	stamp(&sess.CreatedAt, &sess.UpdatedAt, s.now())

	val, err := sonic.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
