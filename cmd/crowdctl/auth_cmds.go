package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

func registerCmd() *cobra.Command {
	var req dtos.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (returns a pending-verification id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			req.Role = models.Role(role)
			verificationID, err := a.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println("Pending verification id:", verificationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleTenant), "tenant|landlord|agent")
	return cmd
}

func verifyOTPCmd() *cobra.Command {
	var req dtos.VerifyOTPRequest

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the one-time code sent after registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			resp, err := a.session.VerifyOTP(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp.User)
		},
	}

	cmd.Flags().StringVar(&req.OTP, "otp", "", "one-time code")
	cmd.Flags().StringVar(&req.UserID, "user-id", "", "pending-verification id (defaults to the one from register)")
	cmd.Flags().StringVar(&req.VerificationType, "type", "", "email|phone|both")
	return cmd
}

func loginCmd() *cobra.Command {
	var req dtos.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			resp, err := a.session.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.session.Logout()
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Fetch the current user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			profile, err := a.session.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			if profile == nil {
				return fmt.Errorf("not logged in")
			}
			return printJSON(profile.User)
		},
	}
}
