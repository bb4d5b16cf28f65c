package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// DocumentRepository is the gateway to the schema-free document store.
// Documents live in named collections; comment threads live in a nested
// subcollection under their post. Field values are untyped JSON.
type DocumentRepository interface {
	List(ctx context.Context, collection string) ([]*models.Document, error)
	Get(ctx context.Context, collection string, id uuid.UUID) (*models.Document, error)
	Create(ctx context.Context, collection string, fields models.Fields) (uuid.UUID, error)
	Update(ctx context.Context, collection string, id uuid.UUID, fields models.Fields) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error

	ListSub(ctx context.Context, collection string, id uuid.UUID, sub string) ([]*models.Document, error)
	CreateSub(ctx context.Context, collection string, id uuid.UUID, sub string, fields models.Fields) (uuid.UUID, error)
	DeleteSub(ctx context.Context, collection string, id uuid.UUID, sub string, subID uuid.UUID) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx database.Querier) DocumentRepository
}

type documentRepository struct {
	q database.Querier
}

// NewDocumentRepository creates a DocumentRepository backed by the given pool.
func NewDocumentRepository(db *database.DB) DocumentRepository {
	return &documentRepository{q: db.Pool}
}

var _ DocumentRepository = (*documentRepository)(nil)

func (r *documentRepository) WithTx(tx database.Querier) DocumentRepository {
	return &documentRepository{q: tx}
}

func (r *documentRepository) List(ctx context.Context, collection string) ([]*models.Document, error) {
	query := `
		SELECT id, collection, fields, created_at
		FROM admin_documents
		WHERE collection = $1 AND parent_id IS NULL
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func (r *documentRepository) Get(ctx context.Context, collection string, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT id, collection, fields, created_at
		FROM admin_documents
		WHERE collection = $1 AND id = $2 AND parent_id IS NULL`

	doc, err := scanDocument(r.q.QueryRow(ctx, query, collection, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) Create(ctx context.Context, collection string, fields models.Fields) (uuid.UUID, error) {
	id := uuid.New()

	query := `
		INSERT INTO admin_documents (id, collection, parent_id, subcollection, fields, created_at)
		VALUES ($1, $2, NULL, NULL, $3, $4)`

	if _, err := r.q.Exec(ctx, query, id, collection, fields, time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return id, nil
}

func (r *documentRepository) Update(ctx context.Context, collection string, id uuid.UUID, fields models.Fields) error {
	// Full replace of the field map; id and created_at are immutable.
	query := `
		UPDATE admin_documents
		SET fields = $3
		WHERE collection = $1 AND id = $2 AND parent_id IS NULL`

	result, err := r.q.Exec(ctx, query, collection, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	query := `DELETE FROM admin_documents WHERE collection = $1 AND id = $2 AND parent_id IS NULL`

	result, err := r.q.Exec(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *documentRepository) ListSub(ctx context.Context, collection string, id uuid.UUID, sub string) ([]*models.Document, error) {
	query := `
		SELECT id, collection, fields, created_at
		FROM admin_documents
		WHERE collection = $1 AND parent_id = $2 AND subcollection = $3
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, collection, id, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: %w", collection, id, sub, err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func (r *documentRepository) CreateSub(ctx context.Context, collection string, id uuid.UUID, sub string, fields models.Fields) (uuid.UUID, error) {
	subID := uuid.New()

	query := `
		INSERT INTO admin_documents (id, collection, parent_id, subcollection, fields, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.q.Exec(ctx, query, subID, collection, id, sub, fields, time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document in %s/%s/%s: %w", collection, id, sub, err)
	}
	return subID, nil
}

func (r *documentRepository) DeleteSub(ctx context.Context, collection string, id uuid.UUID, sub string, subID uuid.UUID) error {
	query := `
		DELETE FROM admin_documents
		WHERE collection = $1 AND parent_id = $2 AND subcollection = $3 AND id = $4`

	result, err := r.q.Exec(ctx, query, collection, id, sub, subID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s/%s/%s: %w", collection, id, sub, subID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func collectDocuments(rows pgx.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document

	err := row.Scan(&doc.ID, &doc.Collection, &doc.Fields, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	if doc.Fields == nil {
		doc.Fields = models.Fields{}
	}
	return &doc, nil
}
