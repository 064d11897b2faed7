package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	GetCommentsCountByPostID(ctx context.Context, postID string) (int64, error)
	DeleteComment(ctx context.Context, id string) error
}

type commentRepository struct {
	docs *gateway.Documents
}

// NewCommentRepository creates a comment repository over the document gateway
func NewCommentRepository(docs *gateway.Documents) CommentRepository {
	return &commentRepository{docs: docs}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollComments, comment)
}

func (r *commentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	q := gateway.Query{
		Equals:  []gateway.Predicate{{Field: "post_id", Value: postID}},
		OrderBy: "created_at",
	}
	if err := r.docs.List(ctx, gateway.CollComments, q, &comments); err != nil {
		return nil, err
	}
	for i := range comments {
		if err := comments[i].EnsureShape(); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

func (r *commentRepository) GetCommentsCountByPostID(ctx context.Context, postID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "post_id", Value: postID}}}
	return r.docs.Count(ctx, gateway.CollComments, q)
}

func (r *commentRepository) DeleteComment(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, gateway.CollComments, id)
}
