package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// UserService covers the user-management operations that fall outside the
// generic entity editor: the typed listing and the active flag toggle.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type userService struct {
	docRepo repositories.DocumentRepository
	logger  *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(docRepo repositories.DocumentRepository, logger *zap.Logger) UserService {
	return &userService{
		docRepo: docRepo,
		logger:  logger,
	}
}

var _ UserService = (*userService)(nil)

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	docs, err := s.docRepo.List(ctx, models.CollectionUsers)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, models.UserFromDocument(doc))
	}
	return users, nil
}

// ToggleActive flips the user's active flag and returns the new value.
func (s *userService) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	doc, err := s.docRepo.Get(ctx, models.CollectionUsers, id)
	if err != nil {
		return false, err
	}

	next := !doc.Fields.Bool(models.FieldIsActive)
	fields := doc.Fields.Clone()
	fields[models.FieldIsActive] = next

	if err := s.docRepo.Update(ctx, models.CollectionUsers, id, fields); err != nil {
		return false, err
	}

	s.logger.Info("Toggled user active flag",
		zap.String("user_id", id.String()),
		zap.Bool("active", next))
	return next, nil
}
