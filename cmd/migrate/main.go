// Command migrate manages the postgres schema the dashboard reads from.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"matchboard/internal/config"
	"matchboard/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// schemaFunc runs against an open database with the embedded migration set.
type schemaFunc func(ctx context.Context, db *gorm.DB, cfg *config.Config, set []database.Migration) error

// withSchema opens the database without applying the schema, so each
// subcommand decides what runs.
func withSchema(fn schemaFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := database.ConnectWithOptions(ctx, cfg, database.ConnectOptions{ApplySchema: false})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() { _ = database.Close(db) }()

		set, err := database.Migrations()
		if err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}
		return fn(ctx, db, cfg, set)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply, inspect or roll back the dashboard schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(upCmd(), autoCmd(), statusCmd(), downCmd())
	return root
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: withSchema(func(ctx context.Context, db *gorm.DB, _ *config.Config, set []database.Migration) error {
			applied, err := database.RunMigrations(ctx, db, set)
			if err != nil {
				return err
			}
			for _, m := range applied {
				fmt.Println("applied", m)
			}
			fmt.Printf("%d new migration(s)\n", len(applied))
			return nil
		}),
	}
}

func autoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Create missing tables and columns with GORM AutoMigrate",
		Args:  cobra.NoArgs,
		RunE: withSchema(func(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []database.Migration) error {
			cfg.DBSchemaMode = database.SchemaModeAuto
			if err := database.ApplySchema(ctx, db, cfg); err != nil {
				return err
			}
			fmt.Println("auto-migrate complete")
			return nil
		}),
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the schema mode and pending migrations",
		Args:  cobra.NoArgs,
		RunE: withSchema(func(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []database.Migration) error {
			status, err := database.GetSchemaStatus(ctx, db, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("mode: %s (env %s)\n", status.Mode, status.Environment)
			fmt.Printf("sql migrations: %t, auto-migrate: %t\n", status.WillRunSQL, status.WillRunAutoMigrate)
			fmt.Printf("applied: %v\n", status.AppliedVersions)
			for _, m := range status.PendingMigrations {
				fmt.Println("pending", m)
			}
			return nil
		}),
	}
}

func downCmd() *cobra.Command {
	var version int
	return &cobra.Command{
		Use:   "down <version>",
		Short: "Roll back one applied migration",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one version")
			}
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			version = v
			return nil
		},
		RunE: withSchema(func(ctx context.Context, db *gorm.DB, _ *config.Config, set []database.Migration) error {
			if err := database.RollbackMigration(ctx, db, set, version); err != nil {
				return err
			}
			fmt.Println("rolled back", version)
			return nil
		}),
	}
}
