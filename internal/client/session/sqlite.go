package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ovasilenko/breedbook/internal/dbx"
)

// SQLiteStore persists session records in the session_store table of the
// client database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session_store[%s]: %w", key, err)
	}
	return value, nil
}

// Set replaces the record as a whole inside one transaction, so a
// concurrent reader of the raw store never observes a torn write.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to replace session_store[%s]: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO session_store (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to replace session_store[%s]: %w", key, err)
		}
		return nil
	})
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to remove session_store[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_store`)
	if err != nil {
		return fmt.Errorf("failed to clear session_store: %w", err)
	}
	return nil
}
