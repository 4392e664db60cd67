package service

import (
	"context"
	"errors"

	"matchboard/internal/dashboard"
	"matchboard/internal/models"
	"matchboard/internal/views"
)

// ProfileService drives the profile editor of a session.
type ProfileService struct{}

// NewProfileService returns a new ProfileService.
func NewProfileService() *ProfileService {
	return &ProfileService{}
}

func currentUser(sess *dashboard.Session) (*models.User, error) {
	user := sess.Shell.Snapshot().CurrentUser
	if user == nil {
		return nil, models.NewNotFoundError("User", "current")
	}
	return user, nil
}

func editorError(err error) error {
	if errors.Is(err, views.ErrNotEditing) {
		return models.NewValidationError(err.Error())
	}
	return err
}

// Begin enters edit mode with a draft of the current user.
func (s *ProfileService) Begin(sess *dashboard.Session) (views.ProfileDraft, error) {
	user, err := currentUser(sess)
	if err != nil {
		return views.ProfileDraft{}, err
	}
	var draft views.ProfileDraft
	_ = sess.Editor(func(e *views.ProfileEditor) error {
		e.Begin(user)
		draft = e.Draft()
		return nil
	})
	return draft, nil
}

// UpdateDraft edits the draft.
func (s *ProfileService) UpdateDraft(sess *dashboard.Session, patch views.DraftPatch) (views.ProfileDraft, error) {
	var draft views.ProfileDraft
	err := sess.Editor(func(e *views.ProfileEditor) error {
		if err := e.Update(patch); err != nil {
			return err
		}
		draft = e.Draft()
		return nil
	})
	return draft, editorError(err)
}

// Cancel discards the draft and leaves edit mode. The user is not touched.
func (s *ProfileService) Cancel(sess *dashboard.Session) {
	user := sess.Shell.Snapshot().CurrentUser
	_ = sess.Editor(func(e *views.ProfileEditor) error {
		e.Cancel(user)
		return nil
	})
}

// Changes lists the draft fields that differ from the current user.
func (s *ProfileService) Changes(sess *dashboard.Session) ([]views.FieldChange, error) {
	user, err := currentUser(sess)
	if err != nil {
		return nil, err
	}
	var changes []views.FieldChange
	err = sess.Editor(func(e *views.ProfileEditor) error {
		if !e.Editing() {
			return views.ErrNotEditing
		}
		changes = e.Changes(user)
		return nil
	})
	return changes, editorError(err)
}

// Save issues one update of name, bio, location and parsed interests, then
// leaves edit mode and refreshes the session.
func (s *ProfileService) Save(ctx context.Context, sess *dashboard.Session) error {
	user, err := currentUser(sess)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	err = sess.Editor(func(e *views.ProfileEditor) error {
		if !e.Editing() {
			return views.ErrNotEditing
		}
		patch = e.Patch()
		return nil
	})
	if err != nil {
		return editorError(err)
	}

	shell := sess.Shell
	err = shell.Attempt(ctx, func(ctx context.Context) error {
		return shell.Backend().Users.UpdateProfile(ctx, user.ID, patch)
	}, models.SuccessToast("Profile updated successfully"), models.ErrorToast("Failed to update profile"))
	if err != nil {
		return err
	}

	_ = sess.Editor(func(e *views.ProfileEditor) error {
		e.Finish()
		return nil
	})
	_ = shell.Refresh(ctx)
	return nil
}
