// Package dashboard holds the per-session view state: the fetched
// collections, the active view, the loading flag and pending toasts.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"matchboard/internal/backend"
	"matchboard/internal/middleware"
	"matchboard/internal/models"
	"matchboard/internal/observability"
	"matchboard/internal/views"
)

// DefaultMessageLimit bounds the messages fetched per refresh.
const DefaultMessageLimit = 10

var (
	loadFailedToast = models.ErrorToast("Failed to load dashboard data")
	previewToast    = models.Toast{
		Title:       "Preview mode",
		Description: "Using mock data. Add backend credentials to enable real backend.",
		Variant:     models.ToastDefault,
	}
)

// EventSink receives events for live subscribers of a session.
type EventSink interface {
	Publish(ctx context.Context, ev models.SessionEvent) error
}

// State is a point-in-time copy of a shell.
type State struct {
	CurrentUser     *models.User     `json:"current_user"`
	Matches         []models.Match   `json:"matches"`
	Messages        []models.Message `json:"messages"`
	ActiveView      views.View       `json:"active_view"`
	Loading         bool             `json:"loading"`
	Preview         bool             `json:"preview"`
	LastRefreshedAt *time.Time       `json:"last_refreshed_at,omitempty"`
}

// Data returns the projection input for s.
func (s State) Data() views.Data {
	return views.Data{CurrentUser: s.CurrentUser, Matches: s.Matches, Messages: s.Messages}
}

// Options configures a Shell.
type Options struct {
	SessionID    string
	Backend      *backend.Backend
	MessageLimit int
	Sink         EventSink
	Clock        func() time.Time
}

// Shell is the single writer of one session's collections. Refresh replaces
// all three collections at once or leaves them untouched.
type Shell struct {
	sessionID    string
	backend      *backend.Backend
	messageLimit int
	sink         EventSink
	clock        func() time.Time

	refreshMu sync.Mutex

	mu          sync.Mutex
	currentUser *models.User
	matches     []models.Match
	messages    []models.Message
	activeView  views.View
	loading     bool
	refreshedAt time.Time
	toasts      *toastQueue
}

// NewShell creates a shell that has not fetched yet. It reports Loading
// until its first Refresh finishes, so nothing renders from empty state.
func NewShell(opts Options) *Shell {
	limit := opts.MessageLimit
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Shell{
		sessionID:    opts.SessionID,
		backend:      opts.Backend,
		messageLimit: limit,
		sink:         opts.Sink,
		clock:        clock,
		activeView:   views.ViewOverview,
		loading:      true,
		toasts:       newToastQueue(maxPendingToasts),
	}
}

// SessionID returns the owning session.
func (s *Shell) SessionID() string {
	return s.sessionID
}

// Backend returns the backend the shell reads from.
func (s *Shell) Backend() *backend.Backend {
	return s.backend
}

type fetched struct {
	user     *models.User
	matches  []models.Match
	messages []models.Message
}

func (s *Shell) fetch(ctx context.Context) (*fetched, error) {
	if s.backend == nil {
		return nil, models.NewBackendError("fetch", models.ErrNotConfigured)
	}
	user, err := s.backend.Users.Current(ctx)
	if err != nil {
		return nil, err
	}
	// Matches and messages are independent calls; a failed matches fetch
	// does not skip the messages fetch.
	matches, matchErr := s.backend.Matches.ListForUser(ctx, user.ID)
	messages, msgErr := s.backend.Messages.ListForUser(ctx, user.ID, s.messageLimit)
	if err := errors.Join(matchErr, msgErr); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []models.Match{}
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return &fetched{user: user, matches: matches, messages: messages}, nil
}

// Refresh re-fetches the current user, their matches and their recent
// messages and replaces all three only if every call succeeded. On failure
// the prior collections are kept and a destructive toast is queued.
func (s *Shell) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	data, err := s.fetch(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.currentUser = data.user
		s.matches = data.matches
		s.messages = data.messages
		s.refreshedAt = s.clock()
	}
	s.mu.Unlock()

	if err != nil {
		observability.DashboardRefreshTotal.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(ctx, "Error fetching dashboard data",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
		s.PushToast(ctx, loadFailedToast)
		return err
	}

	observability.DashboardRefreshTotal.WithLabelValues("ok").Inc()
	if s.backend.Preview() {
		s.PushToast(ctx, previewToast)
	}
	s.publish(ctx, models.SessionEvent{Type: models.EventRefreshed})
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := State{
		Matches:    make([]models.Match, len(s.matches)),
		Messages:   make([]models.Message, len(s.messages)),
		ActiveView: s.activeView,
		Loading:    s.loading,
		Preview:    s.backend.Preview(),
	}
	if s.currentUser != nil {
		u := s.currentUser.Clone()
		out.CurrentUser = &u
	}
	for i, m := range s.matches {
		out.Matches[i] = m.Clone()
	}
	for i, m := range s.messages {
		out.Messages[i] = m.Clone()
	}
	if !s.refreshedAt.IsZero() {
		ts := s.refreshedAt
		out.LastRefreshedAt = &ts
	}
	return out
}

// Navigate switches the active view. Unknown names select overview.
func (s *Shell) Navigate(ctx context.Context, raw string) views.View {
	v := views.Parse(raw)
	s.mu.Lock()
	s.activeView = v
	s.mu.Unlock()
	s.publish(ctx, models.SessionEvent{Type: models.EventNavigated, View: string(v)})
	return v
}

// ActiveView returns the selected view.
func (s *Shell) ActiveView() views.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeView
}

// Loading reports whether a refresh is in flight.
func (s *Shell) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Attempt runs a mutation and queues the matching toast. Failures are
// logged. The state is not refreshed.
func (s *Shell) Attempt(ctx context.Context, action func(context.Context) error, success, failure models.Toast) error {
	if err := action(ctx); err != nil {
		middleware.Logger.ErrorContext(ctx, "Dashboard action failed",
			slog.String("session_id", s.sessionID),
			slog.String("toast", failure.Description),
			slog.String("error", err.Error()),
		)
		s.PushToast(ctx, failure)
		return err
	}
	s.PushToast(ctx, success)
	return nil
}

// Perform is Attempt followed, on success, by a full Refresh.
func (s *Shell) Perform(ctx context.Context, action func(context.Context) error, success, failure models.Toast) error {
	if err := s.Attempt(ctx, action, success, failure); err != nil {
		return err
	}
	// Refresh failures raise their own toast; the mutation itself stands.
	_ = s.Refresh(ctx)
	return nil
}

// PushToast queues t and forwards it to live subscribers.
func (s *Shell) PushToast(ctx context.Context, t models.Toast) {
	observability.ToastsTotal.WithLabelValues(string(t.Variant)).Inc()
	s.toasts.push(t)
	toast := t
	s.publish(ctx, models.SessionEvent{Type: models.EventToast, Toast: &toast})
}

// DrainToasts returns and clears the queued toasts, oldest first.
func (s *Shell) DrainToasts() []models.Toast {
	return s.toasts.drain()
}

func (s *Shell) publish(ctx context.Context, ev models.SessionEvent) {
	if s.sink == nil {
		return
	}
	ev.SessionID = s.sessionID
	ev.At = s.clock()
	if err := s.sink.Publish(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		middleware.Logger.WarnContext(ctx, "Failed to publish dashboard event",
			slog.String("type", string(ev.Type)),
			slog.String("error", err.Error()),
		)
	}
}
