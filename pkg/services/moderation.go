package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// ModerationService drives the verification request workflow: pending
// applications are listed until an operator resolves them into one of the two
// terminal states, and every resolution leaves exactly one audit log entry.
type ModerationService interface {
	ListPending(ctx context.Context) ([]*models.Application, error)
	Resolve(ctx context.Context, id uuid.UUID, decision, actor string) error
}

type moderationService struct {
	db        *database.DB
	docRepo   repositories.DocumentRepository
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

// NewModerationService creates a new moderation service with dependencies.
func NewModerationService(
	db *database.DB,
	docRepo repositories.DocumentRepository,
	auditRepo repositories.AuditRepository,
	logger *zap.Logger,
) ModerationService {
	return &moderationService{
		db:        db,
		docRepo:   docRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

var _ ModerationService = (*moderationService)(nil)

// ListPending returns applications whose status is not terminal.
func (s *moderationService) ListPending(ctx context.Context) ([]*models.Application, error) {
	docs, err := s.docRepo.List(ctx, models.CollectionApplications)
	if err != nil {
		return nil, err
	}

	var pending []*models.Application
	for _, doc := range docs {
		app := models.ApplicationFromDocument(doc)
		if !models.IsTerminalStatus(app.Status) {
			pending = append(pending, app)
		}
	}
	return pending, nil
}

// Resolve moves an application into a terminal state and appends one audit
// log entry describing the decision. Both writes happen in a single store
// transaction: a failure in either rolls back both, so a status change can
// never be observed without its log entry.
func (s *moderationService) Resolve(ctx context.Context, id uuid.UUID, decision, actor string) error {
	if !models.IsValidDecision(decision) {
		return fmt.Errorf("invalid decision: %s", decision)
	}

	doc, err := s.docRepo.Get(ctx, models.CollectionApplications, id)
	if err != nil {
		return err
	}

	app := models.ApplicationFromDocument(doc)
	if models.IsTerminalStatus(app.Status) {
		return apperrors.ErrAlreadyResolved
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	fields := doc.Fields.Clone()
	fields["status"] = decision
	if err = s.docRepo.WithTx(tx).Update(ctx, models.CollectionApplications, id, fields); err != nil {
		return err
	}

	entry := &models.AuditLogEntry{
		Actor:  actor,
		Action: fmt.Sprintf("User %s was verified (%s)", app.Email, decision),
	}
	if err = s.auditRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Resolved verification request",
		zap.String("application_id", id.String()),
		zap.String("decision", decision),
		zap.String("actor", actor))
	return nil
}
