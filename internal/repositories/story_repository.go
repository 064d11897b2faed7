package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// StoryRepository defines the interface for story operations, including the
// view rows used to compute viewer lists and counts.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetAllStories(ctx context.Context) ([]models.Story, error)
	GetStoriesByAuthor(ctx context.Context, authorID string) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	RecordView(ctx context.Context, storyID, userID string) error
	GetViewers(ctx context.Context, storyID string) ([]models.StoryView, error)
	GetViewCount(ctx context.Context, storyID string) (int64, error)
}

type storyRepository struct {
	docs *gateway.Documents
}

// NewStoryRepository creates a story repository over the document gateway
func NewStoryRepository(docs *gateway.Documents) StoryRepository {
	return &storyRepository{docs: docs}
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = uuid.NewString()
	story.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollStories, story)
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	var story models.Story
	if err := r.docs.Get(ctx, gateway.CollStories, id, &story); err != nil {
		return nil, err
	}
	if err := story.EnsureShape(); err != nil {
		return nil, err
	}
	return &story, nil
}

// GetAllStories fetches the whole stories collection newest first. The 24h
// visibility window is applied by the aggregation layer, not the store.
func (r *storyRepository) GetAllStories(ctx context.Context) ([]models.Story, error) {
	return r.list(ctx, gateway.Query{OrderBy: "created_at", Desc: true})
}

func (r *storyRepository) GetStoriesByAuthor(ctx context.Context, authorID string) ([]models.Story, error) {
	return r.list(ctx, gateway.Query{
		Equals:  []gateway.Predicate{{Field: "author_id", Value: authorID}},
		OrderBy: "created_at",
		Desc:    true,
	})
}

func (r *storyRepository) list(ctx context.Context, q gateway.Query) ([]models.Story, error) {
	var stories []models.Story
	if err := r.docs.List(ctx, gateway.CollStories, q, &stories); err != nil {
		return nil, err
	}
	for i := range stories {
		if err := stories[i].EnsureShape(); err != nil {
			return nil, err
		}
	}
	return stories, nil
}

func (r *storyRepository) DeleteStory(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, gateway.CollStories, id)
}

// RecordView is idempotent per (story, viewer): the row id is derived from
// the pair, so a repeat view hits the existing row and is dropped.
func (r *storyRepository) RecordView(ctx context.Context, storyID, userID string) error {
	view := &models.StoryView{
		ID:        RelationID("storyview", userID, storyID),
		StoryID:   storyID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	err := r.docs.Create(ctx, gateway.CollStoryViews, view)
	if err == gateway.ErrAlreadyExists {
		return nil
	}
	return err
}

// GetViewers feeds the story viewers overlay; a transient store error leaves
// the list empty instead of breaking the screen.
func (r *storyRepository) GetViewers(ctx context.Context, storyID string) ([]models.StoryView, error) {
	var views []models.StoryView
	q := gateway.Query{
		Equals:  []gateway.Predicate{{Field: "story_id", Value: storyID}},
		OrderBy: "created_at",
		Desc:    true,
	}
	if err := r.docs.ListSafe(ctx, gateway.CollStoryViews, q, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *storyRepository) GetViewCount(ctx context.Context, storyID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "story_id", Value: storyID}}}
	return r.docs.Count(ctx, gateway.CollStoryViews, q)
}
