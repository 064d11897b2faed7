package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/pkg/logger"
)

// VideoItem is a video post with the per-row counts the player overlays show.
type VideoItem struct {
	models.Post
	Author       models.UserCompact
	LikeCount    int64
	Liked        bool
	CommentCount int64
}

// EnrichVideoPosts prefetches likes, comments and author info per item.
// Failures are swallowed per item with empty fallbacks so one missing
// relation never blanks the whole feed.
func (s *Service) EnrichVideoPosts(ctx context.Context, selfID string, posts []models.Post) []VideoItem {
	authorCache := make(map[string]models.UserCompact)

	items := make([]VideoItem, len(posts))
	for i, p := range posts {
		items[i] = VideoItem{Post: p}

		if count, err := s.likes.GetLikesCountByPostID(ctx, p.ID); err == nil {
			items[i].LikeCount = count
		} else {
			logger.Debug("like count prefetch failed", zap.String("post", p.ID), zap.Error(err))
		}

		if selfID != "" {
			if liked, err := s.likes.HasUserLikedPost(ctx, selfID, p.ID); err == nil {
				items[i].Liked = liked
			}
		}

		if count, err := s.comments.GetCommentsCountByPostID(ctx, p.ID); err == nil {
			items[i].CommentCount = count
		}

		if author, ok := authorCache[p.AuthorID]; ok {
			items[i].Author = author
		} else if user, err := s.users.GetUserByID(ctx, p.AuthorID); err == nil {
			compact := user.ToCompact()
			authorCache[p.AuthorID] = compact
			items[i].Author = compact
		}
	}
	return items
}
