package models

import "time"

// EventType names a dashboard session event.
type EventType string

const (
	EventToast     EventType = "toast"
	EventRefreshed EventType = "refreshed"
	EventNavigated EventType = "navigated"
	// EventsDropped tells a live subscriber it missed events and should
	// refetch the dashboard.
	EventsDropped EventType = "events_dropped"
)

// SessionEvent is pushed to a session's live subscribers.
type SessionEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Toast     *Toast    `json:"toast,omitempty"`
	View      string    `json:"view,omitempty"`
	At        time.Time `json:"at"`
}
