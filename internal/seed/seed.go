package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchboard/internal/middleware"
	"matchboard/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
	DryRun      bool
	// MaxDays bounds how far back generated timestamps reach. Default 90.
	MaxDays int
	// RandSeed makes a run reproducible. Zero seeds from the clock.
	RandSeed int64
	// Now anchors generated timestamps. Zero uses time.Now.
	Now time.Time
}

// Result counts what a run created (or would have created in dry-run).
type Result struct {
	CurrentUserID string
	Users         int
	Matches       int
	Messages      int
}

// Seed populates the database with a current user, one match per other
// user and a message history between the current user and their matches.
// The current user is created first with the earliest created_at, which is
// how the postgres backend picks the current user.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if opts.NumUsers < 2 {
		return Result{}, errors.New("seed needs at least 2 users")
	}
	middleware.Logger.Info("Starting database seeding",
		"users", opts.NumUsers, "messages", opts.NumMessages, "dry_run", opts.DryRun)

	if opts.ShouldClean && !opts.DryRun {
		if err := Clean(ctx, db); err != nil {
			return Result{}, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	f := NewFactory(db, opts)
	var res Result

	current, err := f.CreateUser(ctx, func(u *models.User) {
		u.CreatedAt = f.now.AddDate(0, 0, -f.maxDays()-1)
	})
	if err != nil {
		return res, fmt.Errorf("failed to create current user: %w", err)
	}
	res.CurrentUserID = current.ID
	res.Users++

	candidates := make([]*models.User, 0, opts.NumUsers-1)
	for i := 1; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return res, fmt.Errorf("failed to create users: %w", err)
		}
		candidates = append(candidates, u)
		res.Users++
	}

	for i, candidate := range candidates {
		status := models.MatchStatusPending
		if i%3 == 2 {
			status = models.MatchStatusAccepted
		}
		if _, err := f.CreateMatch(ctx, current, candidate, func(m *models.Match) { m.Status = status }); err != nil {
			return res, fmt.Errorf("failed to create matches: %w", err)
		}
		res.Matches++
	}

	msgs := make([]*models.Message, 0, opts.NumMessages)
	for i := 0; i < opts.NumMessages; i++ {
		other := candidates[f.faker.Number(0, len(candidates)-1)]
		if f.faker.Bool() {
			msgs = append(msgs, f.BuildMessage(current, other))
		} else {
			msgs = append(msgs, f.BuildMessage(other, current))
		}
	}
	if err := f.CreateMessagesBatch(ctx, msgs); err != nil {
		return res, fmt.Errorf("failed to create messages: %w", err)
	}
	res.Messages = len(msgs)

	middleware.Logger.Info("Database seeding completed",
		"current_user", res.CurrentUserID, "users", res.Users, "matches", res.Matches, "messages", res.Messages)
	return res, nil
}

// Clean deletes every message, match and user.
func Clean(ctx context.Context, db *gorm.DB) error {
	middleware.Logger.Info("Clearing existing data")
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&models.Message{}, &models.Match{}, &models.User{}} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
