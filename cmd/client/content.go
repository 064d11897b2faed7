package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/social"
)

func init() {
	postCmd.Flags().String("title", "", "post title")
	postCmd.Flags().String("body", "", "post body")
	postCmd.Flags().String("link", "", "attached link")
	postCmd.Flags().StringSlice("image", nil, "image URL (up to 4)")
	postCmd.Flags().String("video", "", "video URL")
	postCmd.Flags().String("community", "", "community id")

	storyCmd.Flags().String("image", "", "image URL")
	storyCmd.Flags().String("video", "", "video URL")
	storyCmd.Flags().String("overlay", "", "overlay text")

	commentCmd.Flags().String("text", "", "comment text")

	rootCmd.AddCommand(postCmd, storyCmd, commentCmd, likeCmd, followCmd, joinCmd, uploadCmd)
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create a post",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		body, _ := cmd.Flags().GetString("body")
		link, _ := cmd.Flags().GetString("link")
		images, _ := cmd.Flags().GetStringSlice("image")
		video, _ := cmd.Flags().GetString("video")
		community, _ := cmd.Flags().GetString("community")

		post, err := a.social.CreatePost(ctx, &models.CreatePostRequest{
			Title:       title,
			Body:        body,
			Link:        link,
			ImageURLs:   images,
			VideoURL:    video,
			CommunityID: community,
		})
		if err != nil {
			return err
		}
		fmt.Printf("posted %s\n", post.ID)
		return nil
	}),
}

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Create a story",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		image, _ := cmd.Flags().GetString("image")
		video, _ := cmd.Flags().GetString("video")
		overlay, _ := cmd.Flags().GetString("overlay")

		story, err := a.social.CreateStory(ctx, &models.CreateStoryRequest{
			ImageURL: image,
			VideoURL: video,
			Overlay:  overlay,
		})
		if err != nil {
			return err
		}
		fmt.Printf("story %s is live for 24h\n", story.ID)
		return nil
	}),
}

var commentCmd = &cobra.Command{
	Use:   "comment <post-id>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		comment, err := a.social.AddComment(ctx, args[0], &models.CreateCommentRequest{Text: text})
		if err != nil {
			return err
		}
		fmt.Printf("comment %s added\n", comment.ID)
		return nil
	}),
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle a like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.sess.Current()
		if err != nil {
			return err
		}
		postID := args[0]

		liked, err := a.likes.HasUserLikedPost(ctx, user.ID, postID)
		if err != nil {
			return err
		}
		count, err := a.likes.GetLikesCountByPostID(ctx, postID)
		if err != nil {
			return err
		}

		st := &social.LikeState{Liked: liked, Count: count}
		if err := a.social.ToggleLike(ctx, st, postID); err != nil {
			return err
		}
		if st.Liked {
			fmt.Printf("liked (%d)\n", st.Count)
		} else {
			fmt.Printf("unliked (%d)\n", st.Count)
		}
		return nil
	}),
}

var followCmd = &cobra.Command{
	Use:   "follow <handle>",
	Short: "Toggle following a user",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.sess.Current()
		if err != nil {
			return err
		}
		target, err := a.users.GetUserByHandle(ctx, args[0])
		if err != nil {
			return fmt.Errorf("no such user @%s", args[0])
		}

		following, err := a.follows.IsFollowing(ctx, user.ID, target.ID)
		if err != nil {
			return err
		}
		followers, err := a.follows.GetFollowersCount(ctx, target.ID)
		if err != nil {
			return err
		}

		st := &social.FollowState{Following: following, Followers: followers}
		if err := a.social.ToggleFollow(ctx, st, target.ID); err != nil {
			return err
		}
		if st.Following {
			fmt.Printf("following @%s (%d followers)\n", target.Handle, st.Followers)
		} else {
			fmt.Printf("unfollowed @%s (%d followers)\n", target.Handle, st.Followers)
		}
		return nil
	}),
}

var joinCmd = &cobra.Command{
	Use:   "join <community-id>",
	Short: "Toggle membership in a community",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.sess.Current()
		if err != nil {
			return err
		}
		communityID := args[0]

		joined, err := a.comms.IsMember(ctx, user.ID, communityID)
		if err != nil {
			return err
		}
		members, err := a.comms.GetMemberCount(ctx, communityID)
		if err != nil {
			return err
		}

		st := &social.MemberState{Joined: joined, Members: members}
		if err := a.social.ToggleMembership(ctx, st, communityID); err != nil {
			return err
		}
		if st.Joined {
			fmt.Printf("joined (%d members)\n", st.Members)
		} else {
			fmt.Printf("left (%d members)\n", st.Members)
		}
		return nil
	}),
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file and print its public URL",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(filepath.Ext(args[0]))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		url, err := a.social.UploadMedia(ctx, filepath.Base(args[0]), contentType, info.Size(), f)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	}),
}
