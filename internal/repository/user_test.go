package repository

import (
	"testing"

	"matchboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CurrentIsEarliestUser(t *testing.T) {
	db := setupTestDB(t)
	s := seedDashboard(t, db)
	repo := NewUserRepository(db)

	user, err := repo.Current(t.Context())
	require.NoError(t, err)
	assert.Equal(t, s.me.ID, user.ID)
	assert.Equal(t, []string{"surf", "jazz"}, user.Interests)
}

func TestUserRepository_CurrentEmptyTable(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.Current(t.Context())
	requireAppErrorCode(t, err, "NOT_FOUND")
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	s := seedDashboard(t, db)
	repo := NewUserRepository(db)

	err := repo.UpdateProfile(t.Context(), s.me.ID, models.ProfilePatch{
		Name:      "Riley R.",
		Bio:       "",
		Location:  "Madrid",
		Interests: []string{"tapas"},
	})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, db.Where("id = ?", s.me.ID).Take(&got).Error)
	assert.Equal(t, "Riley R.", got.Name)
	assert.Equal(t, "Madrid", got.Location)
	assert.Empty(t, got.Bio)
	assert.Equal(t, []string{"tapas"}, got.Interests)
	assert.Equal(t, 31, got.Age, "age is not part of the patch")

	var other models.User
	require.NoError(t, db.Where("id = ?", s.alice.ID).Take(&other).Error)
	assert.Equal(t, "Alice", other.Name)
}

func TestUserRepository_UpdateProfileUnknownID(t *testing.T) {
	db := setupTestDB(t)
	seedDashboard(t, db)

	err := NewUserRepository(db).UpdateProfile(t.Context(), "ghost", models.ProfilePatch{Name: "x"})
	requireAppErrorCode(t, err, "NOT_FOUND")
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(t.Context(), &models.User{ID: "dup", Name: "One"}))
	err := repo.Create(t.Context(), &models.User{ID: "dup", Name: "Two"})
	requireAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	u := &models.User{Name: "Fresh"}
	require.NoError(t, repo.Create(t.Context(), u))
	assert.NotEmpty(t, u.ID)
	assert.NotNil(t, u.Interests)
}
