package views

import (
	"testing"

	"matchboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMatches_FiltersAndKeepsOrder(t *testing.T) {
	ms := []models.Match{
		matchWith("a", models.MatchStatusPending),
		matchWith("b", models.MatchStatusAccepted),
		matchWith("c", models.MatchStatusPending),
		matchWith("d", models.MatchStatusDeclined),
	}
	ms[0].User.Interests = []string{"hiking", "coffee", "film", "chess"}
	ms[0].User.Age = 27

	cards := PendingMatches(ms)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].MatchID)
	assert.Equal(t, "c", cards[1].MatchID)
	assert.Equal(t, []string{"hiking", "coffee", "film"}, cards[0].Interests)
	assert.Equal(t, 27, cards[0].Age)
	assert.NotNil(t, cards[1].Interests)

	cards[0].Interests[0] = "changed"
	assert.Equal(t, "hiking", ms[0].User.Interests[0], "cards must not alias the input")
}

func TestPendingMatches_Empty(t *testing.T) {
	assert.Empty(t, PendingMatches(nil))
	assert.NotNil(t, PendingMatches(nil))
}
