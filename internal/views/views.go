// Package views holds the pure projections the dashboard renders from its
// fetched collections. Nothing here performs I/O or mutates its input.
package views

import (
	"strings"

	"matchboard/internal/models"
)

// View names one dashboard screen.
type View string

const (
	ViewOverview      View = "overview"
	ViewMatches       View = "matches"
	ViewMessages      View = "messages"
	ViewProfile       View = "profile"
	ViewAnalytics     View = "analytics"
	ViewSettings      View = "settings"
	ViewNotifications View = "notifications"
)

var allViews = []View{
	ViewOverview,
	ViewMatches,
	ViewMessages,
	ViewProfile,
	ViewAnalytics,
	ViewSettings,
	ViewNotifications,
}

// All returns every known view in sidebar order.
func All() []View {
	return append([]View(nil), allViews...)
}

// Parse maps raw onto a known view. Unknown values fall back to overview.
func Parse(raw string) View {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range allViews {
		if v == known {
			return known
		}
	}
	return ViewOverview
}

// Title is the breadcrumb label for v.
func (v View) Title() string {
	s := string(v)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Data is the read-only input every projection works from.
type Data struct {
	CurrentUser *models.User
	Matches     []models.Match
	Messages    []models.Message
}

// CurrentUserID returns the current user's id, or "" before it is known.
func (d Data) CurrentUserID() string {
	if d.CurrentUser == nil {
		return ""
	}
	return d.CurrentUser.ID
}

func firstN[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}

func avatarOrPlaceholder(url string) string {
	if url == "" {
		return "/placeholder.svg"
	}
	return url
}
