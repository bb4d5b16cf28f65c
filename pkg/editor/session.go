package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// State names the editor's position in its lifecycle.
type State string

const (
	// StateBrowsing: no selection, form empty.
	StateBrowsing State = "browsing"
	// StateEditingExisting: a record is selected and bound to the form.
	StateEditingExisting State = "editing"
	// StateCreatingNew: form cleared, no id bound.
	StateCreatingNew State = "creating"
)

// Store is the slice of the document gateway the editor needs.
type Store interface {
	List(ctx context.Context, collection string) ([]*models.Document, error)
	Create(ctx context.Context, collection string, fields models.Fields) (uuid.UUID, error)
	Update(ctx context.Context, collection string, id uuid.UUID, fields models.Fields) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
}

// Definition describes one editable entity.
type Definition struct {
	// Collection is the document store collection the editor binds to.
	Collection string

	// ScalarFields and ListFields enumerate the form's fields. List fields
	// always keep at least one (possibly empty) visible entry.
	ScalarFields []string
	ListFields   []string

	// SwitchField, when set, keys the conditional field groups: only the
	// fields ActiveFields returns for the current switch value are persisted.
	// ConditionalFields is the union of every group, so the editor knows
	// which fields are conditional at all.
	SwitchField       string
	ActiveFields      func(switchValue string) []string
	ConditionalFields []string

	// Defaults supplies fields stamped onto newly created documents only.
	Defaults func() models.Fields

	// Validate, when set, gates Submit.
	Validate func(form FormState) error
}

// empty returns the cleared form: every scalar "", every list a single empty
// entry.
func (d Definition) empty() FormState {
	form := FormState{
		Base:    models.Fields{},
		Scalars: make(map[string]string, len(d.ScalarFields)),
		Lists:   make(map[string][]string, len(d.ListFields)),
	}
	for _, field := range d.ScalarFields {
		form.Scalars[field] = ""
	}
	for _, field := range d.ListFields {
		form.Lists[field] = []string{""}
	}
	return form
}

// populate builds the form bound to an existing document, substituting a
// single empty entry for any absent list field.
func (d Definition) populate(doc *models.Document) FormState {
	form := d.empty()
	form.BoundID = doc.ID
	form.Base = doc.Fields.Clone()
	for _, field := range d.ScalarFields {
		form.Scalars[field] = doc.Fields.String(field)
	}
	for _, field := range d.ListFields {
		if list := doc.Fields.StringList(field); len(list) > 0 {
			form.Lists[field] = list
		}
	}
	return form
}

// payload builds the field map to persist. It starts from the selected
// document's full field map so app-written fields survive, overlays every
// form field, then drops conditional fields outside the active group. Data
// typed into a now-inactive group stays in the form for later, it is only
// omitted from what is persisted.
func (d Definition) payload(form FormState) models.Fields {
	fields := form.Base.Clone()
	if fields == nil {
		fields = models.Fields{}
	}
	for _, field := range d.ScalarFields {
		fields[field] = form.Scalars[field]
	}
	for _, field := range d.ListFields {
		list := make([]string, len(form.Lists[field]))
		copy(list, form.Lists[field])
		fields[field] = list
	}
	if d.SwitchField != "" {
		active := make(map[string]bool)
		for _, field := range d.ActiveFields(form.Scalars[d.SwitchField]) {
			active[field] = true
		}
		for _, field := range d.ConditionalFields {
			if !active[field] {
				delete(fields, field)
			}
		}
	}
	return fields
}

// Session is one operator's editor for one entity. All methods are safe for
// concurrent use, though in practice a session serves a single operator.
type Session struct {
	def    Definition
	store  Store
	logger *zap.Logger

	mu    sync.Mutex
	state State
	form  FormState
	docs  []*models.Document
}

// NewSession creates an editor session in Browsing state.
func NewSession(def Definition, store Store, logger *zap.Logger) *Session {
	return &Session{
		def:    def,
		store:  store,
		logger: logger,
		state:  StateBrowsing,
		form:   def.empty(),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns a snapshot of the current form state.
func (s *Session) Form() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.clone()
}

// Documents returns the most recently listed documents.
func (s *Session) Documents() []*models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs
}

// List fetches the collection and enters (or stays in) the current state.
func (s *Session) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.store.List(ctx, s.def.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.def.Collection, err)
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return docs, nil
}

// Select binds the form to an existing document. Selecting the same document
// again reproduces the identical form state.
func (s *Session) Select(ctx context.Context, id uuid.UUID) error {
	doc := s.cachedDocument(id)
	if doc == nil {
		docs, err := s.List(ctx)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.ID == id {
				doc = d
				break
			}
		}
	}
	if doc == nil {
		return apperrors.ErrNotFound
	}

	s.mu.Lock()
	s.state = StateEditingExisting
	s.form = s.def.populate(doc)
	s.mu.Unlock()
	return nil
}

func (s *Session) cachedDocument(id uuid.UUID) *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Clear unbinds the form and resets every field; callable in any state.
func (s *Session) Clear() {
	s.mu.Lock()
	s.state = StateCreatingNew
	s.form = s.def.empty()
	s.mu.Unlock()
}

// Update applies a reducer to the form in memory. The store is untouched.
func (s *Session) Update(apply func(FormState) FormState) FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = apply(s.form)
	return s.form.clone()
}

// Submit persists the form: update-in-place when bound to an id, create
// otherwise. On success the list is re-fetched, the form cleared and the
// session returns to Browsing. On failure the form is preserved for retry.
func (s *Session) Submit(ctx context.Context) (uuid.UUID, error) {
	s.mu.Lock()
	form := s.form.clone()
	s.mu.Unlock()

	if s.def.Validate != nil {
		if err := s.def.Validate(form); err != nil {
			return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	fields := s.def.payload(form)
	id := form.BoundID

	if id != uuid.Nil {
		if err := s.store.Update(ctx, s.def.Collection, id, fields); err != nil {
			s.logger.Error("Failed to update document",
				zap.String("collection", s.def.Collection),
				zap.String("id", id.String()),
				zap.Error(err))
			return uuid.Nil, err
		}
	} else {
		if s.def.Defaults != nil {
			for k, v := range s.def.Defaults() {
				if _, set := fields[k]; !set {
					fields[k] = v
				}
			}
		}
		created, err := s.store.Create(ctx, s.def.Collection, fields)
		if err != nil {
			s.logger.Error("Failed to create document",
				zap.String("collection", s.def.Collection),
				zap.Error(err))
			return uuid.Nil, err
		}
		id = created
	}

	if _, err := s.List(ctx); err != nil {
		// The write succeeded; a stale list is recoverable on the next fetch.
		s.logger.Warn("Failed to refresh list after submit",
			zap.String("collection", s.def.Collection),
			zap.Error(err))
	}

	s.mu.Lock()
	s.state = StateBrowsing
	s.form = s.def.empty()
	s.mu.Unlock()
	return id, nil
}

// Remove deletes a document after explicit confirmation. If the deleted id
// was bound to the form, the form is cleared. On failure state is unchanged.
func (s *Session) Remove(ctx context.Context, id uuid.UUID, confirm bool) error {
	if !confirm {
		return apperrors.ErrNotConfirmed
	}

	if err := s.store.Delete(ctx, s.def.Collection, id); err != nil {
		s.logger.Error("Failed to delete document",
			zap.String("collection", s.def.Collection),
			zap.String("id", id.String()),
			zap.Error(err))
		return err
	}

	s.mu.Lock()
	wasBound := s.form.BoundID == id
	s.mu.Unlock()
	if wasBound {
		s.Clear()
	}

	if _, err := s.List(ctx); err != nil {
		s.logger.Warn("Failed to refresh list after delete",
			zap.String("collection", s.def.Collection),
			zap.Error(err))
	}

	s.mu.Lock()
	if !wasBound {
		s.state = StateBrowsing
	}
	s.mu.Unlock()
	return nil
}

// Manager hands out per-operator, per-entity sessions keyed by the operator's
// session cookie id.
type Manager struct {
	store  Store
	logger *zap.Logger
	defs   map[string]Definition

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager over the given entity definitions,
// keyed by entity name.
func NewManager(store Store, defs map[string]Definition, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		defs:     defs,
		sessions: make(map[string]*Session),
	}
}

// Session returns the editor session for (operator, entity), creating it on
// first use. Unknown entities return an error.
func (m *Manager) Session(operatorKey, entity string) (*Session, error) {
	def, ok := m.defs[entity]
	if !ok {
		return nil, fmt.Errorf("unknown editor entity: %s", entity)
	}

	key := operatorKey + "/" + entity
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[key]; ok {
		return session, nil
	}
	session := NewSession(def, m.store, m.logger.Named("editor"))
	m.sessions[key] = session
	return session, nil
}
