package repository

import (
	"context"
	"fmt"

	"matchboard/internal/backend"
	"matchboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines persistence operations for matches.
type MatchRepository interface {
	backend.MatchStore
	Create(ctx context.Context, match *models.Match) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository returns a new MatchRepository implementation.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user1_id = ?", userID).
		Find(&matches).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return matches, nil
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) error {
	if !status.Valid() {
		return models.NewValidationError(fmt.Sprintf("invalid match status %q", status))
	}
	result := r.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translateError(result.Error, "Match", id)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Match", id)
	}
	return nil
}

func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(match).Error, "Match", match.ID)
}
