package dashboard

import (
	"context"
	"sync"
	"time"

	"matchboard/internal/backend"
	"matchboard/internal/observability"
	"matchboard/internal/views"
)

// Session is one browser's shell plus its UI-local state: the selected
// conversation, the chat input and the profile editor.
type Session struct {
	ID    string
	Shell *Shell

	mu        sync.Mutex
	editor    views.ProfileEditor
	selected  string
	chatInput string
	lastSeen  time.Time
}

func (s *Session) local() LocalState {
	editor := s.editor
	return LocalState{
		Editor:               &editor,
		SelectedConversation: s.selected,
		ChatInput:            s.chatInput,
	}
}

// Render projects the active view with this session's local state.
func (s *Session) Render() Rendered {
	s.mu.Lock()
	local := s.local()
	s.mu.Unlock()
	return s.Shell.Render(local)
}

// RenderView projects v regardless of the active view.
func (s *Session) RenderView(v views.View) Rendered {
	s.mu.Lock()
	local := s.local()
	s.mu.Unlock()
	return RenderView(s.Shell.Snapshot(), v, local)
}

// SelectConversation marks counterpartID as the open conversation.
func (s *Session) SelectConversation(counterpartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = counterpartID
}

// SelectedConversation returns the open conversation, or "".
func (s *Session) SelectedConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetChatInput stores the unsent chat text.
func (s *Session) SetChatInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatInput = text
}

// ChatInput returns the unsent chat text.
func (s *Session) ChatInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatInput
}

// Editor runs fn with exclusive access to the profile editor.
func (s *Session) Editor(fn func(e *views.ProfileEditor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.editor)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionsOptions configures a Sessions registry.
type SessionsOptions struct {
	Backend      *backend.Backend
	MessageLimit int
	Sink         EventSink
	Clock        func() time.Time
}

// Sessions creates one Session per session id on first use.
type Sessions struct {
	opts SessionsOptions

	mu    sync.Mutex
	items map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions(opts SessionsOptions) *Sessions {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Sessions{opts: opts, items: make(map[string]*Session)}
}

// Get returns the session for id, creating it and running the initial
// fetch when it does not exist yet. A failed initial fetch leaves an error
// toast on the session and is not returned.
func (r *Sessions) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	sess, ok := r.items[id]
	if !ok {
		sess = &Session{
			ID: id,
			Shell: NewShell(Options{
				SessionID:    id,
				Backend:      r.opts.Backend,
				MessageLimit: r.opts.MessageLimit,
				Sink:         r.opts.Sink,
				Clock:        r.opts.Clock,
			}),
		}
		r.items[id] = sess
		observability.ActiveSessions.Set(float64(len(r.items)))
	}
	r.mu.Unlock()

	sess.touch(r.opts.Clock())
	if !ok {
		_ = sess.Shell.Refresh(ctx)
	}
	return sess
}

// Lookup returns an existing session without creating one.
func (r *Sessions) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.items[id]
	return sess, ok
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were dropped.
func (r *Sessions) Sweep(maxIdle time.Duration) int {
	now := r.opts.Clock()
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, sess := range r.items {
		if sess.idleSince(now) > maxIdle {
			delete(r.items, id)
			dropped++
		}
	}
	observability.ActiveSessions.Set(float64(len(r.items)))
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Sessions) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}
