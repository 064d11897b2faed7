package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// PostRepository defines the interface for post document operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetPostsByCommunity(ctx context.Context, communityID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error
	DeletePost(ctx context.Context, id string) error
}

type postRepository struct {
	docs *gateway.Documents
}

// NewPostRepository creates a post repository over the document gateway
func NewPostRepository(docs *gateway.Documents) PostRepository {
	return &postRepository{docs: docs}
}

func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollPosts, post)
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.docs.Get(ctx, gateway.CollPosts, id, &post); err != nil {
		return nil, err
	}
	if err := post.EnsureShape(); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts fetches the whole posts collection newest first. The home feed
// shuffles this client-side; there is no server-side pagination.
func (r *postRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.list(ctx, gateway.Query{OrderBy: "created_at", Desc: true})
}

func (r *postRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return r.list(ctx, gateway.Query{
		Equals:  []gateway.Predicate{{Field: "author_id", Value: authorID}},
		OrderBy: "created_at",
		Desc:    true,
	})
}

func (r *postRepository) GetPostsByCommunity(ctx context.Context, communityID string) ([]models.Post, error) {
	return r.list(ctx, gateway.Query{
		Equals:  []gateway.Predicate{{Field: "community_id", Value: communityID}},
		OrderBy: "created_at",
		Desc:    true,
	})
}

func (r *postRepository) list(ctx context.Context, q gateway.Query) ([]models.Post, error) {
	var posts []models.Post
	if err := r.docs.List(ctx, gateway.CollPosts, q, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if err := posts[i].EnsureShape(); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// UpdatePost edits title/body only; media is immutable after creation.
func (r *postRepository) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error {
	fields := bson.M{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Body != "" {
		fields["body"] = req.Body
	}
	if len(fields) == 0 {
		return nil
	}
	return r.docs.Update(ctx, gateway.CollPosts, id, fields)
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, gateway.CollPosts, id)
}
