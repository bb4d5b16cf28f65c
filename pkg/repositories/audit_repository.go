package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// AuditRepository provides append-only access to the administrative audit log.
// There is deliberately no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	Recent(ctx context.Context, limit int) ([]*models.AuditLogEntry, error)

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx database.Querier) AuditRepository
}

type auditRepository struct {
	q database.Querier
}

// NewAuditRepository creates an AuditRepository backed by the given pool.
func NewAuditRepository(db *database.DB) AuditRepository {
	return &auditRepository{q: db.Pool}
}

var _ AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) WithTx(tx database.Querier) AuditRepository {
	return &auditRepository{q: tx}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO admin_audit_log (id, actor, action, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.q.Exec(ctx, query, entry.ID, entry.Actor, entry.Action, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

func (r *auditRepository) Recent(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	query := `
		SELECT id, actor, action, created_at
		FROM admin_audit_log
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log entries: %w", err)
	}
	return entries, nil
}

func scanAuditLogEntry(row pgx.Row) (*models.AuditLogEntry, error) {
	var entry models.AuditLogEntry
	if err := row.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
	}
	return &entry, nil
}
