// Command main seeds the postgres backend with demo dashboard data.
package main

import (
	"context"
	"fmt"
	"os"

	"matchboard/internal/config"
	"matchboard/internal/database"
	"matchboard/internal/middleware"
	"matchboard/internal/seed"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Populate the database with demo users, matches and messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.NumUsers, "users", 25, "Number of users to create, including the current user")
	flags.IntVar(&opts.NumMessages, "messages", 60, "Number of messages to create")
	flags.BoolVar(&opts.ShouldClean, "clean", false, "Delete existing users, matches and messages first")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Generate data without writing to the database")
	flags.IntVar(&opts.MaxDays, "max-days", 90, "How far back generated timestamps reach")
	flags.Int64Var(&opts.RandSeed, "rand-seed", 0, "Seed for reproducible data (0 uses the clock)")
	return cmd
}

func run(ctx context.Context, opts seed.Options) error {
	if opts.DryRun {
		// Dry runs never touch the database.
		return report(seed.Seed(ctx, nil, opts))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		middleware.Logger.Error("Failed to connect to database", "error", err)
		return err
	}
	defer func() { _ = database.Close(db) }()

	return report(seed.Seed(ctx, db, opts))
}

func report(res seed.Result, err error) error {
	if err != nil {
		middleware.Logger.Error("Seeding failed", "error", err)
		return err
	}

	fmt.Printf("Seeded %d users, %d matches, %d messages (current user %s)\n",
		res.Users, res.Matches, res.Messages, res.CurrentUserID)
	return nil
}
