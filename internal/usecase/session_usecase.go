package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

// SessionUseCase serialises read-modify-write cycles on a session.
type SessionUseCase interface {
	// Get returns the stored session or a fresh unsaved one with that id.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Update runs fn on the session under its lock and saves the result
	// unless fn fails.
	Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error)
	// Destroy deletes the session.
	Destroy(ctx context.Context, id string) error
}

type sessionUseCase struct {
	store repository.SessionStore
	locks *keyedMutex
}

// NewSessionUseCase wraps store with per-id locking.
func NewSessionUseCase(store repository.SessionStore) SessionUseCase {
	return &sessionUseCase{store: store, locks: newKeyedMutex()}
}

func (u *sessionUseCase) Get(ctx context.Context, id string) (*entity.Session, error) {
	sess, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = &entity.Session{ID: id}
	}
	return sess, nil
}

func (u *sessionUseCase) Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	unlock := u.locks.Lock(id)
	defer unlock()

	sess, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := u.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (u *sessionUseCase) Destroy(ctx context.Context, id string) error {
	unlock := u.locks.Lock(id)
	defer unlock()
	return u.store.Delete(ctx, id)
}

// keyedMutex one mutex per key, dropped once nobody holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
