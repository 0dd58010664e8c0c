package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

type sqliteExchangeLog struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteExchangeLog keeps at most maxSize exchanges per session; maxSize
// <= 0 keeps everything.
func NewSQLiteExchangeLog(db *sql.DB, maxSize int) repository.ExchangeLog {
	return &sqliteExchangeLog{db: db, maxSize: maxSize}
}

func (s *sqliteExchangeLog) Save(ctx context.Context, ex entity.Exchange) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO chat_exchanges (id, session_id, user_text, assistant, category, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.SessionID, ex.UserText, ex.Assistant, ex.Category, ex.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}

	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM chat_exchanges
WHERE id IN (
  SELECT id FROM chat_exchanges
  WHERE session_id = ?
  ORDER BY ts DESC, rowid DESC
  LIMIT -1 OFFSET ?
)`, ex.SessionID, s.maxSize)
		if err != nil {
			return fmt.Errorf("failed to trim exchanges: %w", err)
		}
	}
	return tx.Commit()
}

func (s *sqliteExchangeLog) ListBySession(ctx context.Context, sessionID string, limit int) ([]entity.Exchange, error) {
	query := `SELECT id, session_id, user_text, assistant, category, ts FROM chat_exchanges WHERE session_id = ? ORDER BY ts DESC, rowid DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	defer rows.Close()

	var out []entity.Exchange
	for rows.Next() {
		var ex entity.Exchange
		if err := rows.Scan(&ex.ID, &ex.SessionID, &ex.UserText, &ex.Assistant, &ex.Category, &ex.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		out = append(out, ex)
	}

	// oldest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, rows.Err()
}

func (s *sqliteExchangeLog) ClearSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_exchanges WHERE session_id = ?`, sessionID)
	return err
}
