package main

import (
	"fmt"

	"github.com/jhoicas/Bizops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bizops-api/pkg/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				migrations, err := postgres.Migrations()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", m.Version)
				}
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual: %s)", cfg.DB.Driver)
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "esquema al día")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "aplicada %s\n", v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List embedded migrations without connecting")
	return cmd
}
