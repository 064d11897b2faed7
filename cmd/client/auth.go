package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivelabs/loop/client/internal/models"
)

func init() {
	signupCmd.Flags().String("email", "", "account email")
	signupCmd.Flags().String("password", "", "account password")
	signupCmd.Flags().String("name", "", "display name")
	signupCmd.Flags().String("handle", "", "unique handle")

	signinCmd.Flags().String("email", "", "account email")
	signinCmd.Flags().String("password", "", "account password")

	passwordCmd.Flags().String("old", "", "current password")
	passwordCmd.Flags().String("new", "", "new password")

	rootCmd.AddCommand(signupCmd, signinCmd, signoutCmd, whoamiCmd, passwordCmd, verifyCmd)
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		handle, _ := cmd.Flags().GetString("handle")

		user, err := a.sess.SignUp(ctx, &models.SignUpRequest{
			Email:           email,
			Password:        password,
			ConfirmPassword: password,
			DisplayName:     name,
			Handle:          handle,
		})
		if err != nil {
			return err
		}
		fmt.Printf("welcome, @%s\n", user.Handle)
		return nil
	}),
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with email and password",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		user, err := a.sess.SignIn(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("signed in as @%s\n", user.Handle)
		return nil
	}),
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and clear the local session",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.sess.SignOut(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.sess.Current()
		if err != nil {
			return err
		}
		badge := ""
		if user.Verified {
			badge = " ✓"
		}
		fmt.Printf("@%s%s (%s)\n", user.Handle, badge, user.DisplayName)
		return nil
	}),
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		oldPw, _ := cmd.Flags().GetString("old")
		newPw, _ := cmd.Flags().GetString("new")
		if err := a.sess.UpdatePassword(ctx, oldPw, newPw); err != nil {
			return err
		}
		fmt.Println("password updated")
		return nil
	}),
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Request the verified badge",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.social.RequestVerification(ctx); err != nil {
			return err
		}
		fmt.Println("verification request submitted")
		return nil
	}),
}
