// Package seed provides helpers to create demo data for the postgres
// backend mode. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"matchboard/internal/middleware"
	"matchboard/internal/models"
	"matchboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var interestPool = []string{
	"hiking", "coffee", "jazz", "surfing", "cooking", "board games", "yoga",
	"photography", "travel", "running", "climbing", "film", "poetry", "gardening",
	"vinyl", "tennis", "baking", "museums", "cycling", "dogs", "cats", "sci-fi",
}

// Factory builds domain entities and persists them to the database.
// Users and matches go through the same repositories the postgres backend
// reads from.
type Factory struct {
	db      *gorm.DB
	users   repository.UserRepository
	matches repository.MatchRepository
	opts    Options
	faker *gofakeit.Faker
	now   time.Time
	// synthetic ID counter when running in DryRun mode
	nextID int
}

// NewFactory creates a Factory bound to db. A zero opts.RandSeed seeds the
// faker from the clock.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &Factory{
		db:      db,
		users:   repository.NewUserRepository(db),
		matches: repository.NewMatchRepository(db),
		opts:    opts,
		faker:   gofakeit.New(seed),
		now:     now,
	}
}

func (f *Factory) maxDays() int {
	if f.opts.MaxDays <= 0 {
		return 90
	}
	return f.opts.MaxDays
}

// recent returns a time within the last MaxDays.
func (f *Factory) recent() time.Time {
	back := time.Duration(f.faker.Number(0, f.maxDays()*24*60)) * time.Minute
	return f.now.Add(-back)
}

func (f *Factory) interests() []string {
	pool := append([]string(nil), interestPool...)
	f.faker.ShuffleStrings(pool)
	return pool[:f.faker.Number(2, 5)]
}

func (f *Factory) syntheticID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("dry-%s-%d", prefix, f.nextID)
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	lastActive := f.recent()
	user := &models.User{
		Name:       f.faker.FirstName(),
		Age:        f.faker.Number(21, 55),
		Location:   f.faker.City(),
		Bio:        f.faker.Sentence(12),
		AvatarURL:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		Interests:  f.interests(),
		LastActive: &lastActive,
		CreatedAt:  f.recent(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)

	if f.opts.DryRun {
		user.ID = f.syntheticID("user")
		middleware.Logger.Info("[dry-run] CreateUser", "id", user.ID, "name", user.Name)
		return user, nil
	}

	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMatch persists a match recommending candidate to owner.
func (f *Factory) CreateMatch(ctx context.Context, owner, candidate *models.User, overrides ...func(*models.Match)) (*models.Match, error) {
	match := &models.Match{
		User1ID:    owner.ID,
		User2ID:    candidate.ID,
		MatchScore: f.faker.Number(40, 99),
		Status:     models.MatchStatusPending,
		CreatedAt:  f.recent(),
	}
	for _, override := range overrides {
		override(match)
	}

	if f.opts.DryRun {
		match.ID = f.syntheticID("match")
		middleware.Logger.Info("[dry-run] CreateMatch", "id", match.ID, "candidate", candidate.ID, "status", match.Status)
		return match, nil
	}

	if err := f.matches.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// BuildMessage constructs a message from sender to receiver without
// persisting it.
func (f *Factory) BuildMessage(sender, receiver *models.User, overrides ...func(*models.Message)) *models.Message {
	msg := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    f.faker.Sentence(f.faker.Number(3, 14)),
		CreatedAt:  f.recent(),
	}
	for _, override := range overrides {
		override(msg)
	}
	return msg
}

// CreateMessagesBatch persists msgs in a single DB call.
func (f *Factory) CreateMessagesBatch(ctx context.Context, msgs []*models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, m := range msgs {
			m.ID = f.syntheticID("msg")
		}
		middleware.Logger.Info("[dry-run] CreateMessagesBatch (no DB write)", "count", len(msgs))
		return nil
	}
	return f.db.WithContext(ctx).Omit(clause.Associations).Create(&msgs).Error
}
