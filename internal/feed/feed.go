// Package feed shapes flat collections from the document store into what the
// screens render: the shuffled home feed, author-grouped story rails and the
// video-only vertical feed.
package feed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/pkg/logger"
)

// StoryGroup is one rail bucket: all visible stories of a single author, in
// the order the store returned them.
type StoryGroup struct {
	AuthorID string
	Stories  []models.Story
}

// HomeFeed carries the two home sections. Each section fails independently:
// a posts error never blanks the stories rail and vice versa.
type HomeFeed struct {
	Posts    []models.Post
	PostsErr error

	MyStories   []models.Story
	StoryGroups []StoryGroup
	StoriesErr  error
}

// Service aggregates repository data into view shapes.
type Service struct {
	posts    repositories.PostRepository
	stories  repositories.StoryRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository

	now func() time.Time
}

// NewService wires the aggregation service.
func NewService(
	posts repositories.PostRepository,
	stories repositories.StoryRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
) *Service {
	return &Service{
		posts:    posts,
		stories:  stories,
		likes:    likes,
		comments: comments,
		users:    users,
		now:      time.Now,
	}
}

// Home loads both home sections concurrently and waits for all of them, so
// total wait is the max of the section latencies. Errors land in the
// section's error slot instead of aborting the whole load.
func (s *Service) Home(ctx context.Context, selfID string) *HomeFeed {
	home := &HomeFeed{}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		posts, err := s.posts.GetAllPosts(ctx)
		if err != nil {
			logger.Warn("home posts section failed", zap.Error(err))
			home.PostsErr = err
			return
		}
		ShufflePosts(posts)
		home.Posts = posts
	}()

	go func() {
		defer wg.Done()
		stories, err := s.stories.GetAllStories(ctx)
		if err != nil {
			logger.Warn("home stories section failed", zap.Error(err))
			home.StoriesErr = err
			return
		}
		home.MyStories, home.StoryGroups = GroupStories(selfID, stories)
	}()

	wg.Wait()
	return home
}

// ShufflePosts applies a uniform Fisher-Yates shuffle in place. Feed order is
// intentionally non-deterministic per load.
func ShufflePosts(posts []models.Post) {
	rand.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
}

// GroupStories partitions stories into the current user's own and everyone
// else's, then buckets the others by author in first-seen order. One linear
// pass; every story lands in exactly one bucket.
func GroupStories(selfID string, stories []models.Story) (mine []models.Story, groups []StoryGroup) {
	index := make(map[string]int)
	for _, story := range stories {
		if story.AuthorID == selfID {
			mine = append(mine, story)
			continue
		}
		i, ok := index[story.AuthorID]
		if !ok {
			i = len(groups)
			index[story.AuthorID] = i
			groups = append(groups, StoryGroup{AuthorID: story.AuthorID})
		}
		groups[i].Stories = append(groups[i].Stories, story)
	}
	return mine, groups
}

// FilterActive keeps only stories inside the visibility window. Used by
// profile views; the home rail shows whatever the store returned.
func FilterActive(stories []models.Story, now time.Time) []models.Story {
	active := stories[:0:0]
	for _, s := range stories {
		if s.Active(now) {
			active = append(active, s)
		}
	}
	return active
}

// VideoFeed returns only posts carrying playable video, newest first. The
// store's order is preserved; this feed is never shuffled.
func (s *Service) VideoFeed(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVideoPosts(posts), nil
}

// FilterVideoPosts selects posts with a non-empty video field, preserving
// input order.
func FilterVideoPosts(posts []models.Post) []models.Post {
	videos := posts[:0:0]
	for _, p := range posts {
		if p.HasVideo() {
			videos = append(videos, p)
		}
	}
	return videos
}
