package fixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"matchboard/internal/backend"
	"matchboard/internal/models"
)

// Store is an in-memory backend over a private copy of a Dataset.
// Writes change only that copy and never leave the process.
type Store struct {
	mu      sync.RWMutex
	data    Dataset
	users   map[string]models.User
	nextMsg int
	clock   func() time.Time
}

// NewStore copies ds into a new Store.
func NewStore(ds Dataset) *Store {
	s := &Store{
		data:  cloneDataset(ds),
		users: make(map[string]models.User),
		clock: time.Now,
	}
	s.users[ds.CurrentUser.ID] = ds.CurrentUser.Clone()
	for _, m := range ds.Matches {
		if m.User.ID != "" {
			s.users[m.User.ID] = m.User.Clone()
		}
	}
	for _, msg := range ds.Messages {
		if msg.Sender.ID != "" {
			if _, known := s.users[msg.Sender.ID]; !known {
				s.users[msg.Sender.ID] = msg.Sender.Clone()
			}
		}
	}
	s.nextMsg = len(ds.Messages) + 1
	return s
}

// NewBackend exposes s as a backend.Backend in fixture mode.
func NewBackend(s *Store) *backend.Backend {
	return &backend.Backend{
		Mode:     backend.ModeFixtures,
		Users:    userView{s},
		Matches:  matchView{s},
		Messages: messageView{s},
	}
}

// Snapshot returns a copy of the current data.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDataset(s.data)
}

func cloneDataset(ds Dataset) Dataset {
	out := Dataset{CurrentUser: ds.CurrentUser.Clone()}
	out.Matches = make([]models.Match, len(ds.Matches))
	for i, m := range ds.Matches {
		out.Matches[i] = m.Clone()
	}
	out.Messages = make([]models.Message, len(ds.Messages))
	for i, msg := range ds.Messages {
		out.Messages[i] = msg.Clone()
	}
	return out
}

type userView struct{ s *Store }

func (v userView) Current(context.Context) (*models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	user := v.s.data.CurrentUser.Clone()
	return &user, nil
}

func (v userView) UpdateProfile(_ context.Context, id string, patch models.ProfilePatch) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if id != v.s.data.CurrentUser.ID {
		return models.NewNotFoundError("User", id)
	}
	patch.Apply(&v.s.data.CurrentUser)
	v.s.users[id] = v.s.data.CurrentUser.Clone()
	for i := range v.s.data.Messages {
		if v.s.data.Messages[i].SenderID == id {
			v.s.data.Messages[i].Sender = v.s.data.CurrentUser.Clone()
		}
	}
	return nil
}

type matchView struct{ s *Store }

func (v matchView) ListForUser(_ context.Context, userID string) ([]models.Match, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := make([]models.Match, 0, len(v.s.data.Matches))
	for _, m := range v.s.data.Matches {
		if m.User1ID == userID {
			out = append(out, m.Clone())
		}
	}
	return out, nil
}

func (v matchView) UpdateStatus(_ context.Context, id string, status models.MatchStatus) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	for i := range v.s.data.Matches {
		if v.s.data.Matches[i].ID == id {
			v.s.data.Matches[i].Status = status
			return nil
		}
	}
	return models.NewNotFoundError("Match", id)
}

type messageView struct{ s *Store }

func (v messageView) ListForUser(_ context.Context, userID string, limit int) ([]models.Message, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := make([]models.Message, 0, len(v.s.data.Messages))
	for _, msg := range v.s.data.Messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			out = append(out, msg.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v messageView) Create(_ context.Context, msg *models.Message) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	stored := models.Message{
		ID:         fmt.Sprintf("msg-%d", v.s.nextMsg),
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		CreatedAt:  v.s.clock(),
		Sender:     v.s.users[msg.SenderID].Clone(),
	}
	v.s.nextMsg++
	v.s.data.Messages = append(v.s.data.Messages, stored)
	return nil
}
