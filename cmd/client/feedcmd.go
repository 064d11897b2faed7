package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nivelabs/loop/client/pkg/relativetime"
)

func init() {
	notifsCmd.Flags().Bool("read-all", false, "mark all notifications as viewed")
	rootCmd.AddCommand(feedCmd, videosCmd, notifsCmd)
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the home feed (shuffled posts and story rails)",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		selfID := ""
		if user, err := a.sess.Current(); err == nil {
			selfID = user.ID
		}

		home := a.feed.Home(ctx, selfID)

		if home.StoriesErr != nil {
			fmt.Printf("stories unavailable: %v (retry with `loop feed`)\n", home.StoriesErr)
		} else {
			if len(home.MyStories) > 0 {
				fmt.Printf("your stories: %d\n", len(home.MyStories))
			}
			for _, g := range home.StoryGroups {
				fmt.Printf("stories: %s (%d)\n", g.AuthorID, len(g.Stories))
			}
		}

		if home.PostsErr != nil {
			fmt.Printf("posts unavailable: %v (retry with `loop feed`)\n", home.PostsErr)
			return nil
		}
		now := time.Now()
		for _, p := range home.Posts {
			marker := ""
			if p.HasVideo() {
				marker = " ▶"
			}
			fmt.Printf("[%s] %s%s (%s)\n", p.ID, p.Title, marker, relativetime.Format(now, p.CreatedAt))
		}
		return nil
	}),
}

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Show the short-video feed, newest first",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		selfID := ""
		if user, err := a.sess.Current(); err == nil {
			selfID = user.ID
		}

		posts, err := a.feed.VideoFeed(ctx)
		if err != nil {
			return fmt.Errorf("video feed unavailable: %w", err)
		}
		items := a.feed.EnrichVideoPosts(ctx, selfID, posts)
		for i, item := range items {
			liked := ""
			if item.Liked {
				liked = " ♥"
			}
			fmt.Printf("%2d. %s by @%s: %d likes%s, %d comments\n",
				i, item.Title, item.Author.Handle, item.LikeCount, liked, item.CommentCount)
		}
		return nil
	}),
}

var notifsCmd = &cobra.Command{
	Use:   "notifs",
	Short: "Show notifications",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.sess.Current()
		if err != nil {
			return err
		}

		shaped, err := a.notify.List(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, n := range shaped {
			unread := " "
			if !n.IsViewed {
				unread = "*"
			}
			fmt.Printf("%s [%s] %s: %s (%s)\n", unread, n.Icon, n.Title, n.Content, n.When)
		}

		if readAll, _ := cmd.Flags().GetBool("read-all"); readAll {
			if err := a.notify.MarkAllViewed(ctx, user.ID); err != nil {
				return err
			}
			fmt.Println("all notifications marked viewed")
		}
		return nil
	}),
}
