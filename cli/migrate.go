package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carf-backend/config"
	"carf-backend/conn"
	"carf-backend/migrations"
	"carf-backend/store"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MySQL tables of the data source, optionally seeding them from DATA_DIR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if !cfg.DB.Enabled() {
			return fmt.Errorf("DB_HOST is not set")
		}
		ctx := cmd.Context()
		db, err := conn.NewMySQL(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if !migrateSeed {
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		}
		src := store.NewJSONFiles(cfg.DataDir)
		workers, err := src.Workers(ctx)
		if err != nil {
			return err
		}
		catalog, err := src.Catalog(ctx)
		if err != nil {
			return err
		}
		if err := migrations.Seed(ctx, db, workers, catalog); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d servidores and %d cursos\n", len(workers), len(catalog))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "replace table contents with the JSON data files")
	rootCmd.AddCommand(migrateCmd)
}
