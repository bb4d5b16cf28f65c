// Package editor implements the entity editing state machine shared by the
// encyclopedia, achievements and user management screens: browse existing
// records, select one into a form, mutate the form in memory, then submit as
// a create-or-update or delete with confirmation.
package editor

import (
	"github.com/google/uuid"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// FormState is an immutable snapshot of the edit form. Mutators return a new
// value and never touch the store; only Submit persists anything.
type FormState struct {
	// BoundID is the selected document's id, or uuid.Nil in Creating-New.
	BoundID uuid.UUID `json:"bound_id"`

	// Base carries the selected document's full field map so fields the form
	// does not edit (lastLogin, counters written by the app) survive a submit.
	Base models.Fields `json:"-"`

	Scalars map[string]string   `json:"scalars"`
	Lists   map[string][]string `json:"lists"`
}

func (f FormState) clone() FormState {
	out := FormState{
		BoundID: f.BoundID,
		Base:    f.Base.Clone(),
		Scalars: make(map[string]string, len(f.Scalars)),
		Lists:   make(map[string][]string, len(f.Lists)),
	}
	for k, v := range f.Scalars {
		out.Scalars[k] = v
	}
	for k, list := range f.Lists {
		cp := make([]string, len(list))
		copy(cp, list)
		out.Lists[k] = cp
	}
	return out
}

// WithScalar returns a copy of the form with one scalar field replaced.
func (f FormState) WithScalar(field, value string) FormState {
	out := f.clone()
	out.Scalars[field] = value
	return out
}

// WithList returns a copy of the form with a list field replaced wholesale.
// Used by image uploads, which set the full URL list at once.
func (f FormState) WithList(field string, values []string) FormState {
	out := f.clone()
	cp := make([]string, len(values))
	copy(cp, values)
	out.Lists[field] = cp
	return out
}

// WithEntryAdded returns a copy with one empty entry appended to a list field.
func (f FormState) WithEntryAdded(field string) FormState {
	out := f.clone()
	out.Lists[field] = append(out.Lists[field], "")
	return out
}

// WithEntryRemoved returns a copy with the entry at index removed. The first
// position is the template row: removing it grows the list instead, matching
// the form's always-visible first entry.
func (f FormState) WithEntryRemoved(field string, index int) FormState {
	list := f.Lists[field]
	if index <= 0 || index >= len(list) {
		if index == 0 {
			return f.WithEntryAdded(field)
		}
		return f
	}
	out := f.clone()
	out.Lists[field] = append(out.Lists[field][:index], out.Lists[field][index+1:]...)
	return out
}

// WithEntryUpdated returns a copy with one list entry replaced in place.
// Out-of-range indexes leave the form unchanged.
func (f FormState) WithEntryUpdated(field string, index int, value string) FormState {
	if index < 0 || index >= len(f.Lists[field]) {
		return f
	}
	out := f.clone()
	out.Lists[field][index] = value
	return out
}
