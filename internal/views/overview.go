package views

import (
	"time"

	"matchboard/internal/models"
	"matchboard/internal/placeholder"
)

const recentItems = 5

// StatsModel is the four-card stats row shared by overview and analytics.
type StatsModel struct {
	TotalMatches    int     `json:"total_matches"`
	AcceptedMatches int     `json:"accepted_matches"`
	PendingMatches  int     `json:"pending_matches"`
	DeclinedMatches int     `json:"declined_matches"`
	MessageCount    int     `json:"message_count"`
	MatchRate       float64 `json:"match_rate"`
	ProfileScore    float64 `json:"profile_score"`
	MatchesTrend    string  `json:"matches_trend"`
	MessagesTrend   string  `json:"messages_trend"`
}

// RecentMatch is one row of the recent matches card.
type RecentMatch struct {
	MatchID    string `json:"match_id"`
	Name       string `json:"name"`
	Initial    string `json:"initial"`
	Location   string `json:"location"`
	AvatarURL  string `json:"avatar_url"`
	MatchScore int    `json:"match_score"`
}

// RecentMessage is one row of the recent messages card.
type RecentMessage struct {
	MessageID  string    `json:"message_id"`
	SenderName string    `json:"sender_name"`
	AvatarURL  string    `json:"avatar_url"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
	Date       string    `json:"date"`
}

// OverviewModel is the landing screen.
type OverviewModel struct {
	Stats          StatsModel      `json:"stats"`
	RecentMatches  []RecentMatch   `json:"recent_matches"`
	RecentMessages []RecentMessage `json:"recent_messages"`
}

// MatchRate is accepted/total*100, or 0 for an empty collection.
func MatchRate(matches []models.Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	accepted := 0
	for _, m := range matches {
		if m.Status == models.MatchStatusAccepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(matches)) * 100
}

// Stats counts matches by status and messages.
func Stats(d Data) StatsModel {
	s := StatsModel{
		TotalMatches:  len(d.Matches),
		MessageCount:  len(d.Messages),
		MatchRate:     MatchRate(d.Matches),
		ProfileScore:  placeholder.ProfileScore,
		MatchesTrend:  placeholder.MatchesTrendCaption,
		MessagesTrend: placeholder.MessagesTrendCaption,
	}
	for _, m := range d.Matches {
		switch m.Status {
		case models.MatchStatusAccepted:
			s.AcceptedMatches++
		case models.MatchStatusPending:
			s.PendingMatches++
		case models.MatchStatusDeclined:
			s.DeclinedMatches++
		}
	}
	return s
}

// Overview projects the stats row and the first five matches and messages.
func Overview(d Data) OverviewModel {
	out := OverviewModel{
		Stats:          Stats(d),
		RecentMatches:  make([]RecentMatch, 0, recentItems),
		RecentMessages: make([]RecentMessage, 0, recentItems),
	}
	for _, m := range firstN(d.Matches, recentItems) {
		out.RecentMatches = append(out.RecentMatches, RecentMatch{
			MatchID:    m.ID,
			Name:       m.User.Name,
			Initial:    initial(m.User.Name),
			Location:   m.User.Location,
			AvatarURL:  avatarOrPlaceholder(m.User.AvatarURL),
			MatchScore: m.MatchScore,
		})
	}
	for _, msg := range firstN(d.Messages, recentItems) {
		out.RecentMessages = append(out.RecentMessages, RecentMessage{
			MessageID:  msg.ID,
			SenderName: msg.Sender.Name,
			AvatarURL:  avatarOrPlaceholder(msg.Sender.AvatarURL),
			Content:    msg.Content,
			SentAt:     msg.CreatedAt,
			Date:       msg.CreatedAt.Format(time.DateOnly),
		})
	}
	return out
}
