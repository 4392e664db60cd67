package views

import (
	"errors"
	"strings"

	"matchboard/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrNotEditing is returned when the draft is touched outside edit mode.
var ErrNotEditing = errors.New("profile is not in edit mode")

// ProfileDraft is the editable copy of a profile. Interests is the
// comma-separated text the user types.
type ProfileDraft struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Interests string `json:"interests"`
}

// DraftPatch updates the fields it sets.
type DraftPatch struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Interests *string `json:"interests,omitempty"`
}

// ParseInterests splits comma-separated text into trimmed, non-empty tags.
func ParseInterests(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// JoinInterests renders tags the way the draft shows them.
func JoinInterests(tags []string) string {
	return strings.Join(tags, ", ")
}

// DraftFrom copies the editable fields of u. A nil user yields an empty draft.
func DraftFrom(u *models.User) ProfileDraft {
	if u == nil {
		return ProfileDraft{}
	}
	return ProfileDraft{
		Name:      u.Name,
		Bio:       u.Bio,
		Location:  u.Location,
		Interests: JoinInterests(u.Interests),
	}
}

// ProfileEditor is one session's edit-mode toggle and draft. It is not safe
// for concurrent use; the owning session serialises access.
type ProfileEditor struct {
	editing bool
	draft   ProfileDraft
}

// Editing reports whether edit mode is on.
func (e *ProfileEditor) Editing() bool {
	return e.editing
}

// Draft returns the current draft.
func (e *ProfileEditor) Draft() ProfileDraft {
	return e.draft
}

// Begin enters edit mode with a draft copied from u.
func (e *ProfileEditor) Begin(u *models.User) {
	e.draft = DraftFrom(u)
	e.editing = true
}

// Update applies p to the draft.
func (e *ProfileEditor) Update(p DraftPatch) error {
	if !e.editing {
		return ErrNotEditing
	}
	if p.Name != nil {
		e.draft.Name = *p.Name
	}
	if p.Bio != nil {
		e.draft.Bio = *p.Bio
	}
	if p.Location != nil {
		e.draft.Location = *p.Location
	}
	if p.Interests != nil {
		e.draft.Interests = *p.Interests
	}
	return nil
}

// Cancel discards the draft, resetting it from u, and leaves edit mode.
func (e *ProfileEditor) Cancel(u *models.User) {
	e.draft = DraftFrom(u)
	e.editing = false
}

// Patch is the single update a save issues.
func (e *ProfileEditor) Patch() models.ProfilePatch {
	return models.ProfilePatch{
		Name:      e.draft.Name,
		Bio:       e.draft.Bio,
		Location:  e.draft.Location,
		Interests: ParseInterests(e.draft.Interests),
	}
}

// Finish leaves edit mode after a successful save, keeping the saved draft.
func (e *ProfileEditor) Finish() {
	e.editing = false
}

// FieldChange is one edited field, with a text patch from the stored value.
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
	Patch  string `json:"patch"`
}

// Changes lists the draft fields that differ from u. Interests are compared
// after parsing, so spacing differences do not count.
func (e *ProfileEditor) Changes(u *models.User) []FieldChange {
	stored := DraftFrom(u)
	pairs := []struct {
		field, before, after string
	}{
		{"name", stored.Name, e.draft.Name},
		{"bio", stored.Bio, e.draft.Bio},
		{"location", stored.Location, e.draft.Location},
		{"interests", stored.Interests, JoinInterests(ParseInterests(e.draft.Interests))},
	}

	dmp := diffmatchpatch.New()
	changes := []FieldChange{}
	for _, p := range pairs {
		if p.before == p.after {
			continue
		}
		diffs := dmp.DiffMain(p.before, p.after, false)
		changes = append(changes, FieldChange{
			Field:  p.field,
			Before: p.before,
			After:  p.after,
			Patch:  dmp.PatchToText(dmp.PatchMake(p.before, diffs)),
		})
	}
	return changes
}

// ProfileModel is the profile screen.
type ProfileModel struct {
	User    *models.User  `json:"user"`
	Initial string        `json:"initial"`
	Editing bool          `json:"editing"`
	Draft   *ProfileDraft `json:"draft,omitempty"`
}

// Profile projects the current user and, in edit mode, the draft.
func Profile(d Data, e *ProfileEditor) ProfileModel {
	out := ProfileModel{}
	if d.CurrentUser != nil {
		u := d.CurrentUser.Clone()
		out.User = &u
		out.Initial = initial(u.Name)
	}
	if e != nil && e.Editing() {
		draft := e.Draft()
		out.Editing = true
		out.Draft = &draft
	}
	return out
}
