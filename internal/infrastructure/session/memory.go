package session

import (
	"context"
	"sync"
	"time"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

type memoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*entity.Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*entity.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if expired(sess.UpdatedAt, s.now(), s.ttl) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}
	return sess.Clone(), nil
}

func (s *memoryStore) Save(ctx context.Context, sess *entity.Session) error {
	stamp(&sess.CreatedAt, &sess.UpdatedAt, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	if sweepDue(&s.lastSweep, sess.UpdatedAt, s.ttl) {
		for id, stored := range s.sessions {
			if expired(stored.UpdatedAt, sess.UpdatedAt, s.ttl) {
				delete(s.sessions, id)
			}
		}
	}
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*entity.Session)
	return nil
}
