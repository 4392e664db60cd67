package server

import (
	"context"
	"errors"
	"sync"

	"matchboard/internal/backend"
	"matchboard/internal/models"

	"github.com/stretchr/testify/mock"
)

var errBackendDown = errors.New("backend down")

type stubUsers struct{}

func (stubUsers) Current(context.Context) (*models.User, error) {
	return &models.User{ID: "me", Name: "Riley", Interests: []string{"hiking"}}, nil
}

func (stubUsers) UpdateProfile(context.Context, string, models.ProfilePatch) error {
	return errBackendDown
}

type stubMatches struct {
	mu       sync.Mutex
	failList bool
}

func (s *stubMatches) ListForUser(_ context.Context, userID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList {
		return nil, errBackendDown
	}
	return []models.Match{
		{ID: "m1", User1ID: userID, User2ID: "u1", Status: models.MatchStatusPending, User: models.User{ID: "u1", Name: "Alex"}},
		{ID: "m2", User1ID: userID, User2ID: "u2", Status: models.MatchStatusPending, User: models.User{ID: "u2", Name: "Jordan"}},
	}, nil
}

func (s *stubMatches) UpdateStatus(context.Context, string, models.MatchStatus) error {
	return errBackendDown
}

type stubMessages struct{}

func (stubMessages) ListForUser(context.Context, string, int) ([]models.Message, error) {
	return []models.Message{{ID: "x1", SenderID: "u1", ReceiverID: "me", Content: "hey"}}, nil
}

func (stubMessages) Create(context.Context, *models.Message) error {
	return errBackendDown
}

// stubBackend reads fine and fails every write.
func stubBackend() (*backend.Backend, *stubMatches) {
	matches := &stubMatches{}
	return &backend.Backend{
		Mode:     backend.ModeREST,
		Users:    stubUsers{},
		Matches:  matches,
		Messages: stubMessages{},
	}, matches
}

// MockMatchStore is a testify mock of backend.MatchStore.
type MockMatchStore struct {
	mock.Mock
}

func (m *MockMatchStore) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchStore) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
