package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dashlens/dashlens/internal/dbx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// createdAtExpr renders created_at as RFC 3339 so scanning does not depend
// on driver-side DATETIME handling.
const createdAtExpr = `strftime('%Y-%m-%dT%H:%M:%SZ', created_at)`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func parseCreatedAt(s sql.NullString) (time.Time, error) {
	if !s.Valid {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s.String)
}

func (r *SQLiteRepository) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	query :=
		`INSERT INTO users (username, password_hash)
		 VALUES (?, ?)
		 RETURNING id, ` + createdAtExpr

	u := &User{Username: username, PasswordHash: passwordHash}
	var createdAt sql.NullString

	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&u.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, username)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if u.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT id, username, password_hash, ` + createdAtExpr + `
		 FROM users
		 WHERE username = ?`

	u := &User{}
	var createdAt sql.NullString

	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if u.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
