package app

import (
	"fmt"
	"log/slog"

	"github.com/ganot/activitylog/internal/config"
	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/jsonstore"
	"github.com/ganot/activitylog/internal/sqlite"
)

// OpenRepository opens the store backend named by cfg. The returned close
// func must be called when the repository is no longer used.
func OpenRepository(cfg config.StoreConfig) (activity.Repository, func() error, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		store, err := jsonstore.New(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening json store: %w", err)
		}
		return store, func() error { return nil }, nil
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return sqlite.NewCollectionRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewService builds the activity service for cfg over repo.
func NewService(cfg config.Config, repo activity.Repository, logger *slog.Logger, metrics activity.Metrics) *activity.Service {
	opts := []activity.Option{activity.WithCollection(cfg.Store.Collection)}
	if metrics != nil {
		opts = append(opts, activity.WithMetrics(metrics))
	}
	return activity.NewService(repo, logger, opts...)
}
