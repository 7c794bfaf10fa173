package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledes/internal/service/snapshot"
	"ledes/internal/storage"
)

func newMigrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the record tables for the configured driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*cfgPath)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.requireStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := storage.Migrate(db, e.cfg.Database.Driver); err != nil {
				return err
			}
			e.logger.Info("migration complete", zap.String("driver", e.cfg.Database.Driver))
			return nil
		},
	}
}

func newSeedCmd(cfgPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo entity portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*cfgPath)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.requireStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if migrate {
				if err := storage.Migrate(db, e.cfg.Database.Driver); err != nil {
					return err
				}
			}
			n, err := storage.SeedEntities(cmd.Context(), db, e.cfg.Database.Driver, storage.DefaultSeedEntities())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entities\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run migrations before seeding")
	return cmd
}

func newSnapshotCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current dashboard stats as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*cfgPath)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			db, err := e.openStore()
			if err != nil {
				return err
			}
			var source snapshot.RecordStore
			if db != nil {
				defer db.Close()
				source = storage.NewRecords(db)
			}

			snap := snapshot.NewAggregator(source, e.logger).Collect(cmd.Context())
			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			return out.Encode(snap.Stats)
		},
	}
}
