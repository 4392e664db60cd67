package dashboard

import "matchboard/internal/views"

// LocalState is the UI-local state of one session that projections need.
type LocalState struct {
	Editor               *views.ProfileEditor
	SelectedConversation string
	ChatInput            string
}

// Rendered is what a client draws for the main content area. While a
// refresh is in flight only Loading is set.
type Rendered struct {
	Loading bool       `json:"loading"`
	View    views.View `json:"view,omitempty"`
	Content any        `json:"content,omitempty"`
}

// Render projects the active view, or the loading placeholder.
func (s *Shell) Render(local LocalState) Rendered {
	state := s.Snapshot()
	if state.Loading {
		return Rendered{Loading: true}
	}
	return RenderView(state, state.ActiveView, local)
}

// RenderView projects v from state. Settings and notifications have no
// screen of their own and render the overview.
func RenderView(state State, v views.View, local LocalState) Rendered {
	d := state.Data()
	out := Rendered{View: v}
	switch v {
	case views.ViewMatches:
		out.Content = views.PendingMatches(d.Matches)
	case views.ViewMessages:
		out.Content = views.Chat(d, local.SelectedConversation, local.ChatInput)
	case views.ViewProfile:
		out.Content = views.Profile(d, local.Editor)
	case views.ViewAnalytics:
		out.Content = views.Analytics(d)
	default:
		out.Content = views.Overview(d)
	}
	return out
}
