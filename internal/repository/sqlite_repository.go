package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kenotrix/backend/internal/model"
)

type sqliteRepository struct {
	db  *sql.DB
	key string
}

// NewSQLiteRepository stores the snapshot in the kv_store table under key.
func NewSQLiteRepository(db *sql.DB, key string) ThreadRepository {
	return &sqliteRepository{db: db, key: key}
}

func (r *sqliteRepository) Load(ctx context.Context) ([]model.Thread, error) {
	query := "SELECT value FROM kv_store WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Thread{}, nil
		}
		return nil, fmt.Errorf("could not read snapshot: %w", err)
	}
	return decodeSnapshot([]byte(value))
}

func (r *sqliteRepository) Save(ctx context.Context, threads []model.Thread) error {
	data, err := encodeSnapshot(threads)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not write snapshot: %w", err)
	}
	return nil
}
