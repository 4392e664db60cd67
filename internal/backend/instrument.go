package backend

import (
	"context"
	"log/slog"

	"matchboard/internal/middleware"
	"matchboard/internal/models"
	"matchboard/internal/observability"
)

// Instrument wraps every store of b with metrics, tracing and debug logging.
// Results and errors pass through unchanged.
func Instrument(b *Backend) *Backend {
	mode := string(b.Mode)
	return &Backend{
		Mode:     b.Mode,
		Users:    &instrumentedUsers{next: b.Users, mode: mode},
		Matches:  &instrumentedMatches{next: b.Matches, mode: mode},
		Messages: &instrumentedMessages{next: b.Messages, mode: mode},
	}
}

func observe(ctx context.Context, mode, table, op string, call func(context.Context) error) error {
	ctx, span := observability.StartBackendSpan(ctx, mode, table, op)
	done := observability.TrackBackendCall(mode, table, op)

	err := call(ctx)

	done(err)
	observability.EndSpan(span, err)
	if err != nil {
		middleware.Logger.DebugContext(ctx, "backend call failed",
			slog.String("mode", mode), slog.String("table", table),
			slog.String("operation", op), slog.String("error", err.Error()))
	} else {
		middleware.Logger.DebugContext(ctx, "backend call",
			slog.String("mode", mode), slog.String("table", table), slog.String("operation", op))
	}
	return err
}

type instrumentedUsers struct {
	next UserStore
	mode string
}

func (s *instrumentedUsers) Current(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := observe(ctx, s.mode, "users", "current", func(ctx context.Context) error {
		var err error
		user, err = s.next.Current(ctx)
		return err
	})
	return user, err
}

func (s *instrumentedUsers) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) error {
	return observe(ctx, s.mode, "users", "update_profile", func(ctx context.Context) error {
		return s.next.UpdateProfile(ctx, id, patch)
	})
}

type instrumentedMatches struct {
	next MatchStore
	mode string
}

func (s *instrumentedMatches) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := observe(ctx, s.mode, "matches", "list", func(ctx context.Context) error {
		var err error
		matches, err = s.next.ListForUser(ctx, userID)
		return err
	})
	return matches, err
}

func (s *instrumentedMatches) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	return observe(ctx, s.mode, "matches", "update_status", func(ctx context.Context) error {
		return s.next.UpdateStatus(ctx, id, status)
	})
}

type instrumentedMessages struct {
	next MessageStore
	mode string
}

func (s *instrumentedMessages) ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := observe(ctx, s.mode, "messages", "list", func(ctx context.Context) error {
		var err error
		messages, err = s.next.ListForUser(ctx, userID, limit)
		return err
	})
	return messages, err
}

func (s *instrumentedMessages) Create(ctx context.Context, msg *models.Message) error {
	return observe(ctx, s.mode, "messages", "create", func(ctx context.Context) error {
		return s.next.Create(ctx, msg)
	})
}
