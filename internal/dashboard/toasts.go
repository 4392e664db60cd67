package dashboard

import (
	"sync"

	"matchboard/internal/models"
)

const maxPendingToasts = 20

// toastQueue keeps the newest toasts a client has not read yet.
type toastQueue struct {
	mu    sync.Mutex
	limit int
	items []models.Toast
}

func newToastQueue(limit int) *toastQueue {
	return &toastQueue{limit: limit}
}

func (q *toastQueue) push(t models.Toast) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, t)
	if over := len(q.items) - q.limit; over > 0 {
		q.items = append([]models.Toast(nil), q.items[over:]...)
	}
}

func (q *toastQueue) drain() []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []models.Toast{}
	}
	return out
}
