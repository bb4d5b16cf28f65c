package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// AuditService records administrative actions. The log is append-only; there
// is no way to amend or remove an entry through this service.
type AuditService interface {
	Record(ctx context.Context, actor, action string) error
	Recent(ctx context.Context, limit int) ([]*models.AuditLogEntry, error)
}

type auditService struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

var _ AuditService = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, actor, action string) error {
	entry := &models.AuditLogEntry{
		Actor:  actor,
		Action: action,
	}
	return s.auditRepo.Create(ctx, entry)
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.Recent(ctx, limit)
}
