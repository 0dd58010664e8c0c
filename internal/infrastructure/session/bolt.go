package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

var bucketSessions = []byte("sessions")

type boltStore struct {
	db  *bbolt.DB
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	lastSweep time.Time
}

func newBoltStore(path string, ttl time.Duration, now func() time.Time) (*boltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltStore{db: db, ttl: ttl, now: now}, nil
}

func (s *boltStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSessions).Get([]byte(id)); v != nil {
			// v is only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}

	var sess entity.Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if expired(sess.UpdatedAt, s.now(), s.ttl) {
		return nil, s.Delete(ctx, id)
	}
	return &sess, nil
}

func (s *boltStore) Save(ctx context.Context, sess *entity.Session) error {
	stamp(&sess.CreatedAt, &sess.UpdatedAt, s.now())

	data, err := sonic.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(sess.ID), data)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	due := sweepDue(&s.lastSweep, sess.UpdatedAt, s.ttl)
	s.mu.Unlock()
	if due {
		if err := s.sweep(sess.UpdatedAt); err != nil {
			log.Warn().Err(err).Msg("failed to sweep expired sessions")
		}
	}
	return nil
}

// sweep deletes every session that expired before now.
func (s *boltStore) sweep(now time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var meta struct {
				UpdatedAt time.Time `json:"updated_at"`
			}
			if err := sonic.Unmarshal(v, &meta); err != nil || expired(meta.UpdatedAt, now, s.ttl) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(id))
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
