package repository

import (
	"context"

	"matchboard/internal/backend"
	"matchboard/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	backend.UserStore
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Current returns the earliest-created user.
func (r *userRepository) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Take(&user).Error; err != nil {
		return nil, translateError(err, "User", "current")
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) error {
	interests := patch.Interests
	if interests == nil {
		interests = []string{}
	}
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Select("name", "bio", "location", "interests").
		Updates(&models.User{
			Name:      patch.Name,
			Bio:       patch.Bio,
			Location:  patch.Location,
			Interests: interests,
		})
	if result.Error != nil {
		return translateError(result.Error, "User", id)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Interests == nil {
		user.Interests = []string{}
	}
	return translateError(r.db.WithContext(ctx).Create(user).Error, "User", user.ID)
}
