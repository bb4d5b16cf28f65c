package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

// PostService backs the content moderation browser: free-text filtering over
// user posts, lazy access to a post's comment thread, and independent,
// confirmation-gated deletion of either. Deleting a post never cascades into
// its comments and vice versa.
type PostService interface {
	Search(ctx context.Context, term string) ([]*models.Post, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	DeletePost(ctx context.Context, id uuid.UUID, confirm bool) error
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID, confirm bool) error
}

type postService struct {
	docRepo repositories.DocumentRepository
	logger  *zap.Logger
}

// NewPostService creates a new post service.
func NewPostService(docRepo repositories.DocumentRepository, logger *zap.Logger) PostService {
	return &postService{
		docRepo: docRepo,
		logger:  logger,
	}
}

var _ PostService = (*postService)(nil)

// Search returns posts whose any stringified field value contains term,
// case-insensitively. The empty term returns every post. The stored list is
// never mutated; filtering is purely derived.
func (s *postService) Search(ctx context.Context, term string) ([]*models.Post, error) {
	docs, err := s.docRepo.List(ctx, models.CollectionPosts)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	posts := make([]*models.Post, 0, len(docs))
	for _, doc := range docs {
		if needle == "" || matchesAnyField(doc.Fields, needle) {
			posts = append(posts, models.PostFromDocument(doc))
		}
	}
	return posts, nil
}

func matchesAnyField(fields models.Fields, needle string) bool {
	for _, value := range fields {
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", value)), needle) {
			return true
		}
	}
	return false
}

// Comments fetches a post's nested comment thread on demand. Comments are
// never prefetched for unselected posts.
func (s *postService) Comments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	docs, err := s.docRepo.ListSub(ctx, models.CollectionPosts, postID, models.SubcollectionComments)
	if err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, models.CommentFromDocument(postID, doc))
	}
	return comments, nil
}

func (s *postService) DeletePost(ctx context.Context, id uuid.UUID, confirm bool) error {
	if !confirm {
		return apperrors.ErrNotConfirmed
	}
	if err := s.docRepo.Delete(ctx, models.CollectionPosts, id); err != nil {
		return err
	}
	s.logger.Info("Deleted post", zap.String("post_id", id.String()))
	return nil
}

func (s *postService) DeleteComment(ctx context.Context, postID, commentID uuid.UUID, confirm bool) error {
	if !confirm {
		return apperrors.ErrNotConfirmed
	}
	if err := s.docRepo.DeleteSub(ctx, models.CollectionPosts, postID, models.SubcollectionComments, commentID); err != nil {
		return err
	}
	s.logger.Info("Deleted comment",
		zap.String("post_id", postID.String()),
		zap.String("comment_id", commentID.String()))
	return nil
}
