package views

import "matchboard/internal/models"

const cardInterests = 3

// MatchCard is one pending recommendation.
type MatchCard struct {
	MatchID    string   `json:"match_id"`
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Initial    string   `json:"initial"`
	Age        int      `json:"age"`
	Location   string   `json:"location"`
	Bio        string   `json:"bio"`
	AvatarURL  string   `json:"avatar_url"`
	Interests  []string `json:"interests"`
	MatchScore int      `json:"match_score"`
}

// PendingMatches keeps only pending matches, in their fetched order.
func PendingMatches(matches []models.Match) []MatchCard {
	cards := make([]MatchCard, 0, len(matches))
	for _, m := range matches {
		if m.Status != models.MatchStatusPending {
			continue
		}
		cards = append(cards, MatchCard{
			MatchID:    m.ID,
			UserID:     m.User.ID,
			Name:       m.User.Name,
			Initial:    initial(m.User.Name),
			Age:        m.User.Age,
			Location:   m.User.Location,
			Bio:        m.User.Bio,
			AvatarURL:  avatarOrPlaceholder(m.User.AvatarURL),
			Interests:  append([]string{}, firstN(m.User.Interests, cardInterests)...),
			MatchScore: m.MatchScore,
		})
	}
	return cards
}
