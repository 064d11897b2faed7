// Package social is the mutation layer behind the screens: optimistic
// like/follow/membership toggles, content creation, and media upload.
package social

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/notifications"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/internal/session"
	"github.com/nivelabs/loop/client/internal/state"
	"github.com/nivelabs/loop/client/pkg/logger"
	"github.com/nivelabs/loop/client/validators"
)

// ErrNotOwner is returned when a mutation targets a document the current
// user does not own.
var ErrNotOwner = errors.New("not the owner of this document")

// LikeState is the local view state behind a like button.
type LikeState struct {
	Liked bool
	Count int64
}

// FollowState is the local view state behind a follow button.
type FollowState struct {
	Following bool
	Followers int64
}

// MemberState is the local view state behind a community join button.
type MemberState struct {
	Joined  bool
	Members int64
}

// Service performs user mutations against the document store.
type Service struct {
	session       *session.Context
	posts         repositories.PostRepository
	stories       repositories.StoryRepository
	likes         repositories.LikeRepository
	follows       repositories.FollowRepository
	comments      repositories.CommentRepository
	communities   repositories.CommunityRepository
	verifications repositories.VerificationRepository
	notify        *notifications.Service
	files         *gateway.Files
	validate      *validators.Validator
	maxUpload     int64
}

// NewService wires the mutation service. The session context is passed in
// explicitly; the service never reaches for ambient state.
func NewService(
	sess *session.Context,
	posts repositories.PostRepository,
	stories repositories.StoryRepository,
	likes repositories.LikeRepository,
	follows repositories.FollowRepository,
	comments repositories.CommentRepository,
	communities repositories.CommunityRepository,
	verifications repositories.VerificationRepository,
	notify *notifications.Service,
	files *gateway.Files,
	validate *validators.Validator,
	maxUpload int64,
) *Service {
	return &Service{
		session:       sess,
		posts:         posts,
		stories:       stories,
		likes:         likes,
		follows:       follows,
		comments:      comments,
		communities:   communities,
		verifications: verifications,
		notify:        notify,
		files:         files,
		validate:      validate,
		maxUpload:     maxUpload,
	}
}

// ToggleLike flips the like relation for the current user. Local state moves
// first; a failed write rolls it back (handled inside state.Toggle).
func (s *Service) ToggleLike(ctx context.Context, st *LikeState, postID string) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}

	toggle := &state.Toggle{
		Read:  func() (bool, int64) { return st.Liked, st.Count },
		Apply: func(active bool, count int64) { st.Liked, st.Count = active, count },
		Perform: func(ctx context.Context, active bool) error {
			if active {
				return s.likes.CreateLike(ctx, user.ID, postID)
			}
			return s.likes.DeleteLike(ctx, user.ID, postID)
		},
	}
	if err := toggle.Flip(ctx); err != nil {
		return err
	}

	if st.Liked {
		s.announceLike(ctx, user, postID)
	}
	return nil
}

// announceLike is best effort: a missing notification never fails the like.
func (s *Service) announceLike(ctx context.Context, user *models.User, postID string) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		logger.Debug("like notification skipped", zap.String("post", postID), zap.Error(err))
		return
	}
	if err := s.notify.NotifyLike(ctx, user, post); err != nil {
		logger.Debug("like notification failed", zap.String("post", postID), zap.Error(err))
	}
}

// ToggleFollow flips the follow relation between the current user and target.
func (s *Service) ToggleFollow(ctx context.Context, st *FollowState, targetID string) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}
	if user.ID == targetID {
		return fmt.Errorf("cannot follow yourself")
	}

	toggle := &state.Toggle{
		Read:  func() (bool, int64) { return st.Following, st.Followers },
		Apply: func(active bool, count int64) { st.Following, st.Followers = active, count },
		Perform: func(ctx context.Context, active bool) error {
			if active {
				return s.follows.CreateFollow(ctx, user.ID, targetID)
			}
			return s.follows.DeleteFollow(ctx, user.ID, targetID)
		},
	}
	if err := toggle.Flip(ctx); err != nil {
		return err
	}

	if st.Following {
		if err := s.notify.NotifyFollow(ctx, user, targetID); err != nil {
			logger.Debug("follow notification failed", zap.String("target", targetID), zap.Error(err))
		}
	}
	return nil
}

// ToggleMembership flips the current user's membership in a community.
func (s *Service) ToggleMembership(ctx context.Context, st *MemberState, communityID string) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}

	toggle := &state.Toggle{
		Read:  func() (bool, int64) { return st.Joined, st.Members },
		Apply: func(active bool, count int64) { st.Joined, st.Members = active, count },
		Perform: func(ctx context.Context, active bool) error {
			if active {
				return s.communities.JoinCommunity(ctx, user.ID, communityID)
			}
			return s.communities.LeaveCommunity(ctx, user.ID, communityID)
		},
	}
	return toggle.Flip(ctx)
}

// CreatePost validates and creates a post authored by the current user.
func (s *Service) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	user, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    user.ID,
		Title:       req.Title,
		Body:        req.Body,
		Link:        req.Link,
		ImageURLs:   req.ImageURLs,
		VideoURL:    req.VideoURL,
		CommunityID: req.CommunityID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost updates title/body on a post the current user owns.
func (s *Service) EditPost(ctx context.Context, postID string, req *models.UpdatePostRequest) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}
	if err := s.validate.Validate(req); err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		return ErrNotOwner
	}
	return s.posts.UpdatePost(ctx, postID, req)
}

// DeletePost removes a post the current user owns.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		return ErrNotOwner
	}
	return s.posts.DeletePost(ctx, postID)
}

// CreateStory validates and creates a story. Image and video are mutually
// exclusive; one of them is required.
func (s *Service) CreateStory(ctx context.Context, req *models.CreateStoryRequest) (*models.Story, error) {
	user, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if req.ImageURL == "" && req.VideoURL == "" {
		return nil, fmt.Errorf("a story needs an image or a video")
	}

	story := &models.Story{
		AuthorID: user.ID,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		Overlay:  req.Overlay,
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// DeleteStory removes a story the current user owns. Expiry never deletes
// remotely; this is the only deletion path.
func (s *Service) DeleteStory(ctx context.Context, storyID string) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != user.ID {
		return ErrNotOwner
	}
	return s.stories.DeleteStory(ctx, storyID)
}

// ViewStory records that the current user saw a story. Best effort: viewer
// bookkeeping never interrupts viewing.
func (s *Service) ViewStory(ctx context.Context, storyID string) {
	user, err := s.session.Current()
	if err != nil {
		return
	}
	if err := s.stories.RecordView(ctx, storyID, user.ID); err != nil {
		logger.Debug("story view not recorded", zap.String("story", storyID), zap.Error(err))
	}
}

// AddComment validates and appends a comment, then notifies the post author.
func (s *Service) AddComment(ctx context.Context, postID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	user, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   req.Text,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.notify.NotifyComment(ctx, user, post); err != nil {
		logger.Debug("comment notification failed", zap.String("post", postID), zap.Error(err))
	}
	return comment, nil
}

// CreateCommunity validates and creates a community with the current user as
// admin.
func (s *Service) CreateCommunity(ctx context.Context, req *models.CreateCommunityRequest) (*models.Community, error) {
	user, err := s.session.Current()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BannerURL:   req.BannerURL,
		AdminID:     user.ID,
	}
	if err := s.communities.CreateCommunity(ctx, community); err != nil {
		return nil, err
	}

	// The admin is a member from the start.
	if err := s.communities.JoinCommunity(ctx, user.ID, community.ID); err != nil && !errors.Is(err, gateway.ErrAlreadyExists) {
		logger.Warn("admin membership not recorded", zap.String("community", community.ID), zap.Error(err))
	}
	return community, nil
}

// RequestVerification submits the current user's verified-badge request.
// A second submission reports the request already pending.
func (s *Service) RequestVerification(ctx context.Context) error {
	user, err := s.session.Current()
	if err != nil {
		return err
	}
	err = s.verifications.SubmitRequest(ctx, user.ID)
	if errors.Is(err, gateway.ErrAlreadyExists) {
		return fmt.Errorf("verification request already submitted")
	}
	return err
}

// UploadMedia checks the size limit, streams the file to the file store and
// returns the public view URL.
func (s *Service) UploadMedia(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if _, err := s.session.Current(); err != nil {
		return "", err
	}
	if err := validators.CheckUploadSize(size, s.maxUpload); err != nil {
		return "", err
	}
	name, err := s.files.Upload(ctx, filename, contentType, r)
	if err != nil {
		return "", err
	}
	return s.files.PublicURL(name), nil
}
