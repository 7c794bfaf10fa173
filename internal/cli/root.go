package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledes/internal/config"
	"ledes/internal/logger"
	"ledes/internal/storage"
)

// ConfigEnv names the variable holding the config file path.
const ConfigEnv = "LEDES_CONFIG"

// NewRootCmd creates the top-level "ledes" command and registers all subcommands.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "ledes",
		Short:         "Legal operations dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv(ConfigEnv), "Path to the config file")

	root.AddCommand(
		newServeCmd(&cfgPath),
		newMigrateCmd(&cfgPath),
		newSeedCmd(&cfgPath),
		newSnapshotCmd(&cfgPath),
	)
	return root
}

// env is the state shared by every subcommand once configuration is loaded.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadEnv(cfgPath string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &env{cfg: cfg, logger: log}, nil
}

// openStore returns nil without error when no DSN is configured.
func (e *env) openStore() (*sql.DB, error) {
	db, err := storage.Open(e.cfg.Database)
	if errors.Is(err, storage.ErrNotConfigured) {
		e.logger.Warn("record store not configured, dashboard data will be empty")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// requireStore is openStore for commands that cannot run without a database.
func (e *env) requireStore() (*sql.DB, error) {
	db, err := storage.Open(e.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
