package editor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// fakeStore is an in-memory Store that records writes.
type fakeStore struct {
	collection string
	docs       []*models.Document

	createErr error
	updateErr error
	deleteErr error
}

func (s *fakeStore) List(ctx context.Context, collection string) ([]*models.Document, error) {
	out := make([]*models.Document, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, collection string, fields models.Fields) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	id := uuid.New()
	s.docs = append(s.docs, &models.Document{ID: id, Collection: collection, Fields: fields})
	return id, nil
}

func (s *fakeStore) Update(ctx context.Context, collection string, id uuid.UUID, fields models.Fields) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for _, doc := range s.docs {
		if doc.ID == id {
			doc.Fields = fields
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeStore) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, doc := range s.docs {
		if doc.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeStore) get(id uuid.UUID) *models.Document {
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc
		}
	}
	return nil
}

func newEncyclopediaSession(store *fakeStore) *Session {
	return NewSession(Definitions()[EntityEncyclopedia], store, zap.NewNop())
}

func seedMushroom(store *fakeStore, fields models.Fields) uuid.UUID {
	id := uuid.New()
	store.docs = append(store.docs, &models.Document{
		ID:         id,
		Collection: models.CollectionEncyclopedia,
		Fields:     fields,
	})
	return id
}

func TestSelectClearSelect_Reproducible(t *testing.T) {
	store := &fakeStore{}
	id := seedMushroom(store, models.Fields{
		"mushroomName": "Porcini",
		"edibility":    "edible",
		"commonNames":  []string{"Penny bun", "Cep"},
		"images":       []string{"https://example.com/porcini.jpg"},
	})

	session := newEncyclopediaSession(store)
	ctx := context.Background()

	if err := session.Select(ctx, id); err != nil {
		t.Fatalf("first select failed: %v", err)
	}
	first := session.Form()
	if session.State() != StateEditingExisting {
		t.Fatalf("expected editing state, got %s", session.State())
	}
	if first.Scalars["mushroomName"] != "Porcini" {
		t.Errorf("scalar not populated: %v", first.Scalars)
	}
	if !reflect.DeepEqual(first.Lists["commonNames"], []string{"Penny bun", "Cep"}) {
		t.Errorf("list not populated: %v", first.Lists["commonNames"])
	}

	session.Clear()
	if session.State() != StateCreatingNew {
		t.Fatalf("expected creating state after clear, got %s", session.State())
	}
	cleared := session.Form()
	if cleared.BoundID != uuid.Nil || cleared.Scalars["mushroomName"] != "" {
		t.Errorf("clear did not empty the form: %+v", cleared)
	}
	if !reflect.DeepEqual(cleared.Lists["commonNames"], []string{""}) {
		t.Errorf("cleared list should be a single empty entry, got %v", cleared.Lists["commonNames"])
	}

	if err := session.Select(ctx, id); err != nil {
		t.Fatalf("second select failed: %v", err)
	}
	second := session.Form()
	if !reflect.DeepEqual(first.Scalars, second.Scalars) || !reflect.DeepEqual(first.Lists, second.Lists) {
		t.Error("re-selecting the same document did not reproduce the form")
	}
}

func TestSubmit_AfterClearCreatesNewDocument(t *testing.T) {
	store := &fakeStore{}
	existing := seedMushroom(store, models.Fields{
		"mushroomName": "Porcini",
		"images":       []string{"https://example.com/porcini.jpg"},
	})

	session := newEncyclopediaSession(store)
	ctx := context.Background()

	if err := session.Select(ctx, existing); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	session.Clear()
	session.Update(func(f FormState) FormState {
		return f.WithScalar("mushroomName", "Chanterelle").
			WithList("images", []string{"https://example.com/chanterelle.jpg"})
	})

	id, err := session.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if id == existing {
		t.Error("submit after clear updated the previously selected document")
	}
	if len(store.docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(store.docs))
	}
	if session.State() != StateBrowsing {
		t.Errorf("expected browsing state after submit, got %s", session.State())
	}

	created := store.get(id)
	if created.Fields.String("mushroomName") != "Chanterelle" {
		t.Errorf("created document has wrong name: %v", created.Fields)
	}
	if created.Fields.String("createdAt") == "" {
		t.Error("defaults were not stamped onto the created document")
	}
}

func TestSubmit_PreservesFieldsOutsideTheForm(t *testing.T) {
	store := &fakeStore{}
	id := seedMushroom(store, models.Fields{
		"mushroomName": "Porcini",
		"edibility":    "edible",
		"images":       []string{"https://example.com/porcini.jpg"},
		"scanCount":    float64(42), // written by the app, not on the form
	})

	session := newEncyclopediaSession(store)
	ctx := context.Background()

	if err := session.Select(ctx, id); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	session.Update(func(f FormState) FormState {
		return f.WithScalar("description", "A prized edible bolete.")
	})
	if _, err := session.Submit(ctx); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stored := store.get(id).Fields
	if stored["scanCount"] != float64(42) {
		t.Errorf("app-written field lost on submit: %v", stored)
	}
	if stored.String("description") != "A prized edible bolete." {
		t.Errorf("edited field not persisted: %v", stored)
	}
}

func TestSubmit_OmitsInactiveEdibilityGroup(t *testing.T) {
	store := &fakeStore{}
	session := newEncyclopediaSession(store)
	ctx := context.Background()

	session.Clear()
	session.Update(func(f FormState) FormState {
		return f.WithScalar("mushroomName", "Death cap").
			WithScalar("edibility", "poisonous").
			WithScalar("reason", "Contains amatoxins").
			WithList("culinaryUses", []string{"should not persist"}).
			WithList("images", []string{"https://example.com/deathcap.jpg"})
	})

	id, err := session.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stored := store.get(id).Fields
	if stored.String("reason") != "Contains amatoxins" {
		t.Errorf("active group field missing: %v", stored)
	}
	if _, present := stored["culinaryUses"]; present {
		t.Error("inactive group field was persisted")
	}
	if _, present := stored["medicinalUses"]; present {
		t.Error("inactive group field was persisted")
	}
}

func TestSubmit_InactiveGroupStaysInFormAfterSwitchBack(t *testing.T) {
	store := &fakeStore{}
	session := newEncyclopediaSession(store)

	session.Clear()
	form := session.Update(func(f FormState) FormState {
		return f.WithScalar("edibility", "edible").
			WithList("culinaryUses", []string{"Risotto"}).
			WithScalar("edibility", "poisonous")
	})

	// Switching away hides the group from persistence but keeps the data.
	if !reflect.DeepEqual(form.Lists["culinaryUses"], []string{"Risotto"}) {
		t.Errorf("switching edibility discarded typed data: %v", form.Lists["culinaryUses"])
	}

	form = session.Update(func(f FormState) FormState {
		return f.WithScalar("edibility", "edible")
	})
	if !reflect.DeepEqual(form.Lists["culinaryUses"], []string{"Risotto"}) {
		t.Errorf("switching back lost typed data: %v", form.Lists["culinaryUses"])
	}
}

func TestSubmit_ValidationFailurePreservesForm(t *testing.T) {
	store := &fakeStore{}
	session := newEncyclopediaSession(store)
	ctx := context.Background()

	session.Clear()
	session.Update(func(f FormState) FormState {
		return f.WithScalar("mushroomName", "No image yet")
	})

	if _, err := session.Submit(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing image, got %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("failed submit wrote to the store")
	}
	if session.Form().Scalars["mushroomName"] != "No image yet" {
		t.Error("failed submit discarded the form")
	}
	if session.State() != StateCreatingNew {
		t.Errorf("failed submit changed state to %s", session.State())
	}
}

func TestFormState_ListMutators(t *testing.T) {
	store := &fakeStore{}
	session := newEncyclopediaSession(store)
	session.Clear()

	form := session.Update(func(f FormState) FormState {
		return f.WithEntryUpdated("habitats", 0, "Oak woodland").
			WithEntryAdded("habitats").
			WithEntryUpdated("habitats", 1, "Pine forest")
	})
	if !reflect.DeepEqual(form.Lists["habitats"], []string{"Oak woodland", "Pine forest"}) {
		t.Fatalf("unexpected list after edits: %v", form.Lists["habitats"])
	}

	form = session.Update(func(f FormState) FormState {
		return f.WithEntryRemoved("habitats", 1)
	})
	if !reflect.DeepEqual(form.Lists["habitats"], []string{"Oak woodland"}) {
		t.Fatalf("unexpected list after remove: %v", form.Lists["habitats"])
	}

	// The first position is the always-visible template row; removing it
	// grows the list instead.
	form = session.Update(func(f FormState) FormState {
		return f.WithEntryRemoved("habitats", 0)
	})
	if len(form.Lists["habitats"]) != 2 {
		t.Fatalf("removing the template row should append, got %v", form.Lists["habitats"])
	}

	// Out-of-range updates are no-ops.
	before := session.Form()
	after := session.Update(func(f FormState) FormState {
		return f.WithEntryUpdated("habitats", 99, "nope")
	})
	if !reflect.DeepEqual(before.Lists, after.Lists) {
		t.Error("out-of-range update changed the form")
	}
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	store := &fakeStore{}
	id := seedMushroom(store, models.Fields{
		"mushroomName": "Porcini",
		"images":       []string{"https://example.com/porcini.jpg"},
	})

	session := newEncyclopediaSession(store)
	ctx := context.Background()

	err := session.Remove(ctx, id, false)
	if !errors.Is(err, apperrors.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if store.get(id) == nil {
		t.Fatal("unconfirmed remove deleted the document")
	}

	if err := session.Remove(ctx, id, true); err != nil {
		t.Fatalf("confirmed remove failed: %v", err)
	}
	if store.get(id) != nil {
		t.Fatal("confirmed remove left the document in place")
	}
}

func TestRemove_BoundDocumentClearsForm(t *testing.T) {
	store := &fakeStore{}
	id := seedMushroom(store, models.Fields{
		"mushroomName": "Porcini",
		"images":       []string{"https://example.com/porcini.jpg"},
	})

	session := newEncyclopediaSession(store)
	ctx := context.Background()

	if err := session.Select(ctx, id); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := session.Remove(ctx, id, true); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if session.State() != StateCreatingNew {
		t.Errorf("expected creating state after removing bound document, got %s", session.State())
	}
	if form := session.Form(); form.BoundID != uuid.Nil {
		t.Error("form still bound to deleted document")
	}
}

func TestManager_SessionsAreIndependentPerOperator(t *testing.T) {
	store := &fakeStore{}
	manager := NewManager(store, Definitions(), zap.NewNop())

	a, err := manager.Session("operator-a", EntityEncyclopedia)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	b, err := manager.Session("operator-b", EntityEncyclopedia)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if a == b {
		t.Fatal("different operators share an editor session")
	}

	a.Update(func(f FormState) FormState { return f.WithScalar("mushroomName", "Porcini") })
	if b.Form().Scalars["mushroomName"] != "" {
		t.Error("one operator's edits leaked into another's form")
	}

	again, err := manager.Session("operator-a", EntityEncyclopedia)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if again != a {
		t.Error("same operator did not get the same session back")
	}

	if _, err := manager.Session("operator-a", "no-such-entity"); err == nil {
		t.Error("expected an error for an unknown entity")
	}
}
