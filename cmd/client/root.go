package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivelabs/loop/client/internal/feed"
	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/notifications"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/internal/session"
	"github.com/nivelabs/loop/client/internal/social"
	"github.com/nivelabs/loop/client/pkg/config"
	"github.com/nivelabs/loop/client/pkg/firebase"
	"github.com/nivelabs/loop/client/pkg/logger"
	"github.com/nivelabs/loop/client/validators"
)

var rootCmd = &cobra.Command{
	Use:           "loop",
	Short:         "Command-line client for the Loop social backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app holds everything a command needs, wired once per invocation.
type app struct {
	cfg        *config.Config
	sess       *session.Context
	feed       *feed.Service
	social     *social.Service
	notify     *notifications.Service
	users      repositories.UserRepository
	posts      repositories.PostRepository
	likes      repositories.LikeRepository
	follows    repositories.FollowRepository
	comms      repositories.CommunityRepository
	disconnect func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if err := logger.Init(cfg.Env); err != nil {
		return nil, err
	}

	docs, disconnect, err := gateway.Dial(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	// The file gateway is only wired when storage credentials are present;
	// commands that never upload work without them.
	var files *gateway.Files
	if cfg.FirebaseCredentialsPath != "" {
		fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		files = gateway.NewFiles(fb.Bucket, fb.BucketName)
	}

	local, err := session.OpenLocalStore(cfg.LocalStorePath)
	if err != nil {
		return nil, err
	}

	validate := validators.NewValidator()

	users := repositories.NewUserRepository(docs)
	sessions := repositories.NewSessionRepository(docs)
	posts := repositories.NewPostRepository(docs)
	stories := repositories.NewStoryRepository(docs)
	likes := repositories.NewLikeRepository(docs)
	follows := repositories.NewFollowRepository(docs)
	comments := repositories.NewCommentRepository(docs)
	communities := repositories.NewCommunityRepository(docs)
	verifications := repositories.NewVerificationRepository(docs)
	notifRepo := repositories.NewNotificationRepository(docs)

	sess := session.New(users, sessions, local, validate, cfg.JWTSecret)
	if err := sess.Init(ctx); err != nil {
		return nil, err
	}

	notify := notifications.NewService(notifRepo)
	feedSvc := feed.NewService(posts, stories, likes, comments, users)
	socialSvc := social.NewService(sess, posts, stories, likes, follows, comments,
		communities, verifications, notify, files, validate, cfg.MaxUploadBytes)

	return &app{
		cfg:        cfg,
		sess:       sess,
		feed:       feedSvc,
		social:     socialSvc,
		notify:     notify,
		users:      users,
		posts:      posts,
		likes:      likes,
		follows:    follows,
		comms:      communities,
		disconnect: disconnect,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.sess.Close(); err != nil {
		fmt.Printf("warning: closing local store: %v\n", err)
	}
	if err := a.disconnect(ctx); err != nil {
		fmt.Printf("warning: disconnecting: %v\n", err)
	}
	logger.Sync()
}

// withApp wraps a command body with app setup and teardown.
func withApp(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)
		return run(ctx, a, cmd, args)
	}
}
