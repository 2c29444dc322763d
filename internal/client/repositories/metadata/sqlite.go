package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/dbx"
)

const (
	selectValue = `SELECT value FROM metadata WHERE key = ?`
	upsertValue = `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteKey = `DELETE FROM metadata WHERE key = ?`
)

// SQLiteRepository runs against a *sql.DB or a *sql.Tx, so the session
// store can group writes in one transaction.
type SQLiteRepository struct {
	q dbx.DBTX
}

func NewSQLiteRepository(q dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{q: q}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	switch err := r.q.QueryRowContext(ctx, selectValue, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("metadata get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key. A nil value is stored as empty, since the
// column is NOT NULL.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.q.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("metadata set %q: %w", key, err)
	}
	return nil
}

// Delete removes keys one statement at a time; run it in a transaction for
// all-or-nothing semantics.
func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if _, err := r.q.ExecContext(ctx, deleteKey, k); err != nil {
			return fmt.Errorf("metadata delete %q: %w", k, err)
		}
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
