package views

import (
	"testing"

	"matchboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebar_Fallbacks(t *testing.T) {
	out := Sidebar(Data{}, ViewOverview)
	assert.Equal(t, "AI Match", out.Brand)
	assert.Equal(t, "Live Matching Platform", out.Tagline)
	assert.Equal(t, "Demo User", out.User.Name)
	assert.Equal(t, "Demo City", out.User.Location)
	assert.Equal(t, "U", out.User.Initial)
	assert.Equal(t, "/placeholder.svg", out.User.AvatarURL)
}

func TestSidebar_ActiveAndBadges(t *testing.T) {
	user := &models.User{ID: "me", Name: "Riley", Location: "Lisbon"}
	out := Sidebar(Data{CurrentUser: user}, ViewMessages)

	require.Len(t, out.Navigation, 5)
	require.Len(t, out.Settings, 2)
	active := 0
	for _, item := range append(out.Navigation, out.Settings...) {
		if item.Active {
			active++
			assert.Equal(t, ViewMessages, item.View)
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, "3", out.Navigation[1].Badge)
	assert.Equal(t, "12", out.Navigation[2].Badge)
	assert.Empty(t, out.Navigation[0].Badge)
	assert.Equal(t, "Riley", out.User.Name)
	assert.Equal(t, "R", out.User.Initial)
	assert.Equal(t, "messages", out.Breadcrumb)

	again := Sidebar(Data{}, ViewSettings)
	assert.False(t, again.Navigation[2].Active, "package-level items are not mutated")
	assert.True(t, again.Settings[0].Active)
}
