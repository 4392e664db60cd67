package views

import (
	"testing"

	"matchboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleUser() *models.User {
	return &models.User{
		ID:        "me",
		Name:      "Riley",
		Age:       31,
		Location:  "Lisbon",
		Bio:       "Surfer.",
		Interests: []string{"surf", "jazz"},
	}
}

func TestParseInterests(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseInterests("a, b ,  ,c"))
	assert.Equal(t, []string{}, ParseInterests(""))
	assert.Equal(t, []string{}, ParseInterests(" , ,"))
	assert.Equal(t, []string{"rock climbing"}, ParseInterests(" rock climbing "))
}

func TestProfileEditor_BeginCopiesUser(t *testing.T) {
	var e ProfileEditor
	assert.False(t, e.Editing())

	e.Begin(sampleUser())
	assert.True(t, e.Editing())
	assert.Equal(t, ProfileDraft{Name: "Riley", Bio: "Surfer.", Location: "Lisbon", Interests: "surf, jazz"}, e.Draft())
}

func TestProfileEditor_UpdateRequiresEditMode(t *testing.T) {
	var e ProfileEditor
	assert.ErrorIs(t, e.Update(DraftPatch{Name: strPtr("x")}), ErrNotEditing)
}

func TestProfileEditor_CancelLeavesUserIdentical(t *testing.T) {
	user := sampleUser()
	before := user.Clone()

	var e ProfileEditor
	e.Begin(user)
	require.NoError(t, e.Update(DraftPatch{
		Name:      strPtr("Someone Else"),
		Bio:       strPtr(""),
		Location:  strPtr("Oslo"),
		Interests: strPtr("a, b ,  ,c"),
	}))
	e.Cancel(user)

	assert.Equal(t, before, *user)
	assert.False(t, e.Editing())
	assert.Equal(t, DraftFrom(user), e.Draft())
}

func TestProfileEditor_Patch(t *testing.T) {
	var e ProfileEditor
	e.Begin(sampleUser())
	require.NoError(t, e.Update(DraftPatch{Interests: strPtr("a, b ,  ,c"), Location: strPtr("Porto")}))

	patch := e.Patch()
	assert.Equal(t, models.ProfilePatch{
		Name:      "Riley",
		Bio:       "Surfer.",
		Location:  "Porto",
		Interests: []string{"a", "b", "c"},
	}, patch)
}

func TestProfileEditor_Changes(t *testing.T) {
	user := sampleUser()
	var e ProfileEditor
	e.Begin(user)
	assert.Empty(t, e.Changes(user))

	require.NoError(t, e.Update(DraftPatch{
		Location:  strPtr("Lisbon, PT"),
		Interests: strPtr("surf,jazz"),
	}))
	changes := e.Changes(user)
	require.Len(t, changes, 1, "interest spacing is not a change")
	assert.Equal(t, "location", changes[0].Field)
	assert.Equal(t, "Lisbon", changes[0].Before)
	assert.Equal(t, "Lisbon, PT", changes[0].After)
	assert.Contains(t, changes[0].Patch, "@@")

	require.NoError(t, e.Update(DraftPatch{Interests: strPtr("surf")}))
	assert.Len(t, e.Changes(user), 2)
}

func TestProfile(t *testing.T) {
	assert.Nil(t, Profile(Data{}, nil).User)

	user := sampleUser()
	var e ProfileEditor
	out := Profile(Data{CurrentUser: user}, &e)
	require.NotNil(t, out.User)
	assert.Equal(t, "R", out.Initial)
	assert.False(t, out.Editing)
	assert.Nil(t, out.Draft)

	e.Begin(user)
	out = Profile(Data{CurrentUser: user}, &e)
	assert.True(t, out.Editing)
	require.NotNil(t, out.Draft)
	assert.Equal(t, "surf, jazz", out.Draft.Interests)

	out.User.Interests[0] = "mutated"
	assert.Equal(t, "surf", user.Interests[0])
}
