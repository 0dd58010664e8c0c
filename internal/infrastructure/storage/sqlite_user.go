package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, account_type, address, phone_number, is_profile_complete`

type sqliteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository users table repository
func NewSQLiteUserRepository(db *sql.DB) repository.UserRepository {
	return &sqliteUserRepository{db: db}
}

func (s *sqliteUserRepository) Create(ctx context.Context, user *entity.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, account_type, address, phone_number, is_profile_complete) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, string(user.AccountType), user.Address, user.Phone, user.ProfileComplete)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id
	return nil
}

func (s *sqliteUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *sqliteUserRepository) UpdateProfile(ctx context.Context, id int64, address, phone string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET address = ?, phone_number = ?, is_profile_complete = 1 WHERE id = ?`,
		address, phone, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *sqliteUserRepository) ListByType(ctx context.Context, types ...entity.AccountType) ([]entity.User, error) {
	if len(types) == 0 {
		return nil, nil
	}
	args := make([]any, len(types))
	for i, t := range types {
		args[i] = string(t)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types)), ", ")

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE account_type IN (`+placeholders+`) ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		u           entity.User
		accountType string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &accountType, &u.Address, &u.Phone, &u.ProfileComplete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.AccountType = entity.AccountType(accountType)
	return &u, nil
}
