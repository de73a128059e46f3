package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ganot/activitylog/internal/repository"
)

// CollectionRepository implements activity.Repository for SQLite
type CollectionRepository struct {
	db *DB
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(db *DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// LoadCollection returns the stored items of the named collection
func (r *CollectionRepository) LoadCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, repository.ErrInvalidName
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("collection %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("collection %q: %w: %v", name, repository.ErrCorrupt, err)
	}
	return items, nil
}

// SaveCollection replaces the named collection with items
func (r *CollectionRepository) SaveCollection(ctx context.Context, name string, items []json.RawMessage) error {
	if strings.TrimSpace(name) == "" {
		return repository.ErrInvalidName
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	query := `
		INSERT INTO collections (name, data, item_count, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			item_count = excluded.item_count,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, name, string(data), len(items)); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}
