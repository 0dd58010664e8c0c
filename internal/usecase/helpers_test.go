package usecase

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/infrastructure/session"
	"github.com/foodpulse/foodpulse/internal/infrastructure/storage"
)

// remoteQuery is on topic but has no FAQ answer.
const remoteQuery = "food qqqq zzzz wwww"

type stubCompletion struct {
	mu    sync.Mutex
	reply entity.Completion
	calls int
}

func (s *stubCompletion) Complete(context.Context, string, string) entity.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.reply
}

func (s *stubCompletion) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func memorySessions(t *testing.T) repository.SessionStore {
	t.Helper()
	store, err := session.NewStore(session.StoreTypeMemory)
	require.NoError(t, err)
	return store
}
