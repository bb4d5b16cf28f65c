package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// memDocRepo is an in-memory DocumentRepository for service tests.
type memDocRepo struct {
	docs map[string][]*models.Document          // collection -> ordered docs
	subs map[uuid.UUID][]*models.Document       // parent -> ordered sub docs
	errs map[string]error                       // op name -> forced error
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{
		docs: make(map[string][]*models.Document),
		subs: make(map[uuid.UUID][]*models.Document),
		errs: make(map[string]error),
	}
}

func (r *memDocRepo) add(collection string, fields models.Fields) uuid.UUID {
	id := uuid.New()
	r.docs[collection] = append(r.docs[collection], &models.Document{
		ID: id, Collection: collection, Fields: fields, CreatedAt: time.Now(),
	})
	return id
}

func (r *memDocRepo) addSub(parent uuid.UUID, fields models.Fields) uuid.UUID {
	id := uuid.New()
	r.subs[parent] = append(r.subs[parent], &models.Document{
		ID: id, Fields: fields, CreatedAt: time.Now(),
	})
	return id
}

func (r *memDocRepo) List(ctx context.Context, collection string) ([]*models.Document, error) {
	if err := r.errs["List"]; err != nil {
		return nil, err
	}
	return r.docs[collection], nil
}

func (r *memDocRepo) Get(ctx context.Context, collection string, id uuid.UUID) (*models.Document, error) {
	for _, doc := range r.docs[collection] {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memDocRepo) Create(ctx context.Context, collection string, fields models.Fields) (uuid.UUID, error) {
	return r.add(collection, fields), nil
}

func (r *memDocRepo) Update(ctx context.Context, collection string, id uuid.UUID, fields models.Fields) error {
	if err := r.errs["Update"]; err != nil {
		return err
	}
	for _, doc := range r.docs[collection] {
		if doc.ID == id {
			doc.Fields = fields
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memDocRepo) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	docs := r.docs[collection]
	for i, doc := range docs {
		if doc.ID == id {
			r.docs[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memDocRepo) ListSub(ctx context.Context, collection string, id uuid.UUID, sub string) ([]*models.Document, error) {
	return r.subs[id], nil
}

func (r *memDocRepo) CreateSub(ctx context.Context, collection string, id uuid.UUID, sub string, fields models.Fields) (uuid.UUID, error) {
	return r.addSub(id, fields), nil
}

func (r *memDocRepo) DeleteSub(ctx context.Context, collection string, id uuid.UUID, sub string, subID uuid.UUID) error {
	docs := r.subs[id]
	for i, doc := range docs {
		if doc.ID == subID {
			r.subs[id] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memDocRepo) WithTx(tx database.Querier) repositories.DocumentRepository {
	return r
}

var _ repositories.DocumentRepository = (*memDocRepo)(nil)

// memAuditRepo records audit entries in memory.
type memAuditRepo struct {
	entries   []*models.AuditLogEntry
	createErr error
}

func (r *memAuditRepo) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) Recent(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*models.AuditLogEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memAuditRepo) WithTx(tx database.Querier) repositories.AuditRepository {
	return r
}

var _ repositories.AuditRepository = (*memAuditRepo)(nil)

// mockStatsRepo returns canned stats and records the query windows.
type mockStatsRepo struct {
	counts map[string]int
	stamps map[string][]time.Time // collection/field -> timestamps

	countBetweenFrom time.Time
	countBetweenTo   time.Time
}

func (r *mockStatsRepo) Count(ctx context.Context, collection string) (int, error) {
	return r.counts[collection], nil
}

func (r *mockStatsRepo) CountBetween(ctx context.Context, collection, field string, from, to time.Time) (int, error) {
	r.countBetweenFrom = from
	r.countBetweenTo = to

	count := 0
	for _, ts := range r.stamps[collection+"/"+field] {
		if !ts.Before(from) && ts.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *mockStatsRepo) TimestampsBetween(ctx context.Context, collection, field string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, ts := range r.stamps[collection+"/"+field] {
		if !ts.Before(from) && ts.Before(to) {
			out = append(out, ts)
		}
	}
	return out, nil
}

var _ repositories.StatsRepository = (*mockStatsRepo)(nil)
