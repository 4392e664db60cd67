package service

import (
	"context"
	"sync"
	"testing"

	"matchboard/internal/backend"
	"matchboard/internal/dashboard"
	"matchboard/internal/models"

	"github.com/stretchr/testify/require"
)

// Stub stores built from func fields, one per backend call.

type stubUsers struct {
	currentFn func(ctx context.Context) (*models.User, error)
	updateFn  func(ctx context.Context, id string, patch models.ProfilePatch) error
}

func (s *stubUsers) Current(ctx context.Context) (*models.User, error) { return s.currentFn(ctx) }
func (s *stubUsers) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) error {
	return s.updateFn(ctx, id, patch)
}

type stubMatches struct {
	listFn   func(ctx context.Context, userID string) ([]models.Match, error)
	updateFn func(ctx context.Context, id string, status models.MatchStatus) error
}

func (s *stubMatches) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	return s.listFn(ctx, userID)
}
func (s *stubMatches) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	return s.updateFn(ctx, id, status)
}

type stubMessages struct {
	listFn   func(ctx context.Context, userID string, limit int) ([]models.Message, error)
	createFn func(ctx context.Context, msg *models.Message) error
}

func (s *stubMessages) ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	return s.listFn(ctx, userID, limit)
}
func (s *stubMessages) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}

// memoryStores is a tiny mutable dataset behind the stubs that counts
// reads so tests can tell whether a refresh happened.
type memoryStores struct {
	mu       sync.Mutex
	user     models.User
	matches  []models.Match
	messages []models.Message
	fetches  int

	users    *stubUsers
	matchSt  *stubMatches
	messageS *stubMessages
}

func newMemoryStores() *memoryStores {
	m := &memoryStores{
		user: models.User{ID: "me", Name: "Riley", Interests: []string{"hiking"}},
		matches: []models.Match{
			{ID: "m1", User1ID: "me", User2ID: "u1", Status: models.MatchStatusPending},
			{ID: "m2", User1ID: "me", User2ID: "u2", Status: models.MatchStatusPending},
			{ID: "m3", User1ID: "me", User2ID: "u3", Status: models.MatchStatusAccepted},
		},
		messages: []models.Message{
			{ID: "x1", SenderID: "u1", ReceiverID: "me", Content: "hey"},
		},
	}
	m.users = &stubUsers{
		currentFn: func(context.Context) (*models.User, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.fetches++
			u := m.user.Clone()
			return &u, nil
		},
		updateFn: func(_ context.Context, id string, patch models.ProfilePatch) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if id == m.user.ID {
				patch.Apply(&m.user)
			}
			return nil
		},
	}
	m.matchSt = &stubMatches{
		listFn: func(context.Context, string) ([]models.Match, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return append([]models.Match(nil), m.matches...), nil
		},
		updateFn: func(_ context.Context, id string, status models.MatchStatus) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i := range m.matches {
				if m.matches[i].ID == id {
					m.matches[i].Status = status
				}
			}
			return nil
		},
	}
	m.messageS = &stubMessages{
		listFn: func(context.Context, string, int) ([]models.Message, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return append([]models.Message(nil), m.messages...), nil
		},
		createFn: func(_ context.Context, msg *models.Message) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			msg.ID = "new"
			m.messages = append(m.messages, *msg)
			return nil
		},
	}
	return m
}

func (m *memoryStores) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *memoryStores) backend() *backend.Backend {
	return &backend.Backend{Mode: backend.ModeREST, Users: m.users, Matches: m.matchSt, Messages: m.messageS}
}

func newSession(t *testing.T, m *memoryStores) *dashboard.Session {
	t.Helper()
	sessions := dashboard.NewSessions(dashboard.SessionsOptions{Backend: m.backend()})
	sess := sessions.Get(context.Background(), "sess-1")
	require.NotNil(t, sess.Shell.Snapshot().CurrentUser)
	sess.Shell.DrainToasts()
	return sess
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	return appErr.Code
}
