package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/dbx"
)

// Backend is the durable key/value storage behind a Store.
// metadata.Repository satisfies it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

type atomicFunc func(ctx context.Context, fn func(ctx context.Context, b Backend) error) error

// Store holds at most one token at a time.
type Store struct {
	backend Backend
	atomic  atomicFunc
	now     func() time.Time
}

// New returns a Store over b. Writes touching several keys are not atomic.
func New(b Backend) *Store {
	return &Store{
		backend: b,
		atomic: func(ctx context.Context, fn func(ctx context.Context, b Backend) error) error {
			return fn(ctx, b)
		},
		now: time.Now,
	}
}

// NewSQLite returns a Store over the metadata table of db. Token writes
// run in one transaction.
func NewSQLite(db *sql.DB) *Store {
	s := New(metadata.NewSQLiteRepository(db))
	s.atomic = func(ctx context.Context, fn func(ctx context.Context, b Backend) error) error {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return fn(ctx, metadata.NewSQLiteRepository(tx))
		})
	}
	return s
}

// Token reads the stored token. ok is false when no session exists.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	v, ok, err := s.backend.Get(ctx, common.TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if !ok || len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

// HasToken reports whether a token is stored. Storage errors count as no
// session.
func (s *Store) HasToken(ctx context.Context) bool {
	_, ok, err := s.Token(ctx)
	return err == nil && ok
}

// SetToken replaces the stored token. Subsequent requests use it at once.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	savedAt := strconv.FormatInt(s.now().Unix(), 10)

	err := s.atomic(ctx, func(ctx context.Context, b Backend) error {
		if err := b.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return b.Set(ctx, common.TokenSavedAtKey, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *Store) Clear(ctx context.Context) error {
	err := s.atomic(ctx, func(ctx context.Context, b Backend) error {
		return b.Delete(ctx, common.TokenKey, common.TokenSavedAtKey)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SavedAt returns when the current token was stored, or the zero time.
func (s *Store) SavedAt(ctx context.Context) time.Time {
	v, ok, err := s.backend.Get(ctx, common.TokenSavedAtKey)
	if err != nil || !ok {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// Claims decodes the payload of the stored token. See DecodeClaims.
func (s *Store) Claims(ctx context.Context) (*Claims, error) {
	token, ok, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no session", ErrDecode)
	}
	return DecodeClaims(token)
}
