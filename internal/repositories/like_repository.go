package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// LikeRepository defines the interface for like relation rows
type LikeRepository interface {
	CreateLike(ctx context.Context, userID, postID string) error
	DeleteLike(ctx context.Context, userID, postID string) error
	HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID string) (int64, error)
	GetLikesByPostID(ctx context.Context, postID string) ([]models.Like, error)
}

type likeRepository struct {
	docs *gateway.Documents
}

// NewLikeRepository creates a like repository over the document gateway
func NewLikeRepository(docs *gateway.Documents) LikeRepository {
	return &likeRepository{docs: docs}
}

// CreateLike inserts the relation row under its pair-derived id. A duplicate
// insert returns gateway.ErrAlreadyExists; callers treat that as "the
// relation holds".
func (r *likeRepository) CreateLike(ctx context.Context, userID, postID string) error {
	like := &models.Like{
		ID:        RelationID("like", userID, postID),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	return r.docs.Create(ctx, gateway.CollLikes, like)
}

// DeleteLike removes the relation row. Rows written before ids were derived
// from the pair are found by (user, post) lookup and the first match deleted.
func (r *likeRepository) DeleteLike(ctx context.Context, userID, postID string) error {
	err := r.docs.Delete(ctx, gateway.CollLikes, RelationID("like", userID, postID))
	if !errors.Is(err, gateway.ErrNotFound) {
		return err
	}

	var likes []models.Like
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "user_id", Value: userID},
		{Field: "post_id", Value: postID},
	}}
	if err := r.docs.List(ctx, gateway.CollLikes, q, &likes); err != nil {
		return err
	}
	if len(likes) == 0 {
		return gateway.ErrNotFound
	}
	return r.docs.Delete(ctx, gateway.CollLikes, likes[0].ID)
}

func (r *likeRepository) HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error) {
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "user_id", Value: userID},
		{Field: "post_id", Value: postID},
	}}
	count, err := r.docs.Count(ctx, gateway.CollLikes, q)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) GetLikesCountByPostID(ctx context.Context, postID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "post_id", Value: postID}}}
	return r.docs.Count(ctx, gateway.CollLikes, q)
}

// GetLikesByPostID feeds the likers overlay; a transient store error leaves
// the list empty instead of breaking the screen.
func (r *likeRepository) GetLikesByPostID(ctx context.Context, postID string) ([]models.Like, error) {
	var likes []models.Like
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "post_id", Value: postID}}}
	if err := r.docs.ListSafe(ctx, gateway.CollLikes, q, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}
