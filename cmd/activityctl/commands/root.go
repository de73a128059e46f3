package commands

import (
	"fmt"
	"log/slog"

	"github.com/ganot/activitylog/internal/app"
	"github.com/ganot/activitylog/internal/config"
	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the activityctl command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activityctl",
		Short: "Record activities and inspect action icons",
		Long: `activityctl writes activities to the same store the activitylog server uses
and prints the action icon catalog.

Store settings come from ACTIVITYLOG_* environment variables and the file named by
ACTIVITYLOG_CONFIG_PATH; the flags below override them.

Examples:
  activityctl record --user-id u1 --user-name Ana --action job_create --target-id J-7
  activityctl icon invoice_update
  activityctl icons -o json`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("backend", "", "Store backend: json or sqlite")
	cmd.PersistentFlags().String("dir", "", "Directory for the json backend")
	cmd.PersistentFlags().String("path", "", "Database file for the sqlite backend")
	cmd.PersistentFlags().String("collection", "", "Collection name")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(RecordCommand())
	cmd.AddCommand(IconCommand())
	cmd.AddCommand(IconsCommand())

	return cmd
}

// loadConfig reads the shared configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"backend":    &cfg.Store.Backend,
		"dir":        &cfg.Store.Dir,
		"path":       &cfg.Store.Path,
		"collection": &cfg.Store.Collection,
		"log-level":  &cfg.Log.Level,
	}
	for name, target := range overrides {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		*target = value
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openService opens the configured store. The close func releases it.
func openService(cmd *cobra.Command) (*activity.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}

	repo, closeRepo, err := app.OpenRepository(cfg.Store)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	logger.Debug("store opened", slog.String("backend", cfg.Store.Backend), slog.String("collection", cfg.Store.Collection))

	svc := app.NewService(cfg, repo, logger, nil)
	return svc, func() {
		_ = closeRepo()
		_ = closeLog()
	}, nil
}
