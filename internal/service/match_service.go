// Package service implements the dashboard's user actions on top of a
// session's shell and backend.
package service

import (
	"context"
	"fmt"

	"matchboard/internal/dashboard"
	"matchboard/internal/models"
)

// MatchService accepts and declines match recommendations.
type MatchService struct{}

// NewMatchService returns a new MatchService.
func NewMatchService() *MatchService {
	return &MatchService{}
}

// Respond moves the pending match matchID to status with a single-row
// update, then refreshes the session. Only pending matches may move.
func (s *MatchService) Respond(ctx context.Context, sess *dashboard.Session, matchID string, status models.MatchStatus) error {
	if status != models.MatchStatusAccepted && status != models.MatchStatusDeclined {
		return models.NewValidationError(fmt.Sprintf("cannot respond to a match with status %q", status))
	}

	shell := sess.Shell
	success := models.SuccessToast(fmt.Sprintf("Match %s successfully", status))
	failure := models.ErrorToast("Failed to update match")

	return shell.Perform(ctx, func(ctx context.Context) error {
		match, err := findMatch(shell.Snapshot(), matchID)
		if err != nil {
			return err
		}
		if !match.Status.CanTransition(status) {
			return models.NewValidationError(fmt.Sprintf("match %s is %s; only pending matches can be accepted or declined", matchID, match.Status))
		}
		return shell.Backend().Matches.UpdateStatus(ctx, matchID, status)
	}, success, failure)
}

func findMatch(state dashboard.State, id string) (*models.Match, error) {
	for i := range state.Matches {
		if state.Matches[i].ID == id {
			return &state.Matches[i], nil
		}
	}
	return nil, models.NewNotFoundError("Match", id)
}
