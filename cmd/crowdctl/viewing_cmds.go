package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

func viewingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewings",
		Short: "Book and manage property viewings",
	}
	cmd.AddCommand(
		viewingsListCmd(),
		viewingsGetCmd(),
		viewingsBookCmd(),
		viewingsRescheduleCmd(),
		viewingsCancelCmd(),
		viewingsStatusCmd(),
		viewingsFeedbackCmd(),
	)
	return cmd
}

func viewingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <viewing-id>",
		Short: "Fetch one viewing's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			viewing, err := a.bookings.FetchViewingByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(viewing)
		},
	}
}

func viewingsRescheduleCmd() *cobra.Command {
	var date, notes string

	cmd := &cobra.Command{
		Use:   "reschedule <viewing-id>",
		Short: "Move a viewing to a new date or update its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			req := dtos.RescheduleRequest{Notes: notes}
			if date != "" {
				parsed, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("invalid --date (want RFC3339): %w", err)
				}
				req.ScheduledDate = &parsed
			}

			viewing, err := a.bookings.UpdateViewing(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printJSON(viewing)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "new scheduled date (RFC3339)")
	cmd.Flags().StringVar(&notes, "notes", "", "updated notes")
	return cmd
}

func viewingsListCmd() *cobra.Command {
	var role, propertyID string
	var pastOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List viewings for the acting role, split into upcoming and past",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			switch models.Role(role) {
			case models.RoleLandlord:
				_, err = a.bookings.FetchLandlordViewings(ctx, propertyID)
			case models.RoleAgent:
				_, err = a.bookings.FetchAgentViewings(ctx, propertyID)
			default:
				_, err = a.bookings.FetchTenantViewings(ctx)
			}
			if err != nil {
				return err
			}

			if pastOnly {
				return printJSON(a.bookings.PastViewings())
			}
			return printJSON(a.bookings.UpcomingViewings())
		},
	}

	cmd.Flags().StringVar(&role, "role", string(models.RoleTenant), "tenant|landlord|agent")
	cmd.Flags().StringVar(&propertyID, "property", "", "scope to one property (landlord/agent)")
	cmd.Flags().BoolVar(&pastOnly, "past", false, "show past viewings instead of upcoming")
	return cmd
}

func viewingsBookCmd() *cobra.Command {
	var propertyID, date, notes string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a property viewing",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			req := dtos.BookViewingRequest{PropertyID: propertyID, Notes: notes}
			if date != "" {
				parsed, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("invalid --date (want RFC3339): %w", err)
				}
				req.ScheduledDate = parsed
			}

			viewing, err := a.bookings.BookViewing(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(viewing)
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "property id")
	cmd.Flags().StringVar(&date, "date", "", "scheduled date (RFC3339)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the landlord/agent")
	return cmd
}

func viewingsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <viewing-id>",
		Short: "Cancel a viewing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.bookings.CancelViewing(cmd.Context(), args[0])
		},
	}
}

func viewingsStatusCmd() *cobra.Command {
	var role, status, notes string

	cmd := &cobra.Command{
		Use:   "status <viewing-id>",
		Short: "Transition a viewing's status (acting role is required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			viewing, err := a.bookings.UpdateViewingStatus(
				cmd.Context(), args[0], models.Role(role),
				dtos.UpdateViewingStatusRequest{
					Status: models.ViewingStatus(status),
					Notes:  notes,
				},
			)
			if err != nil {
				return err
			}
			return printJSON(viewing)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "acting role: tenant|landlord|agent")
	cmd.Flags().StringVar(&status, "status", "", "pending|confirmed|completed|canceled|no_show")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func viewingsFeedbackCmd() *cobra.Command {
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "feedback <viewing-id>",
		Short: "Submit feedback for a completed viewing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			viewing, err := a.bookings.SubmitFeedback(cmd.Context(), args[0],
				dtos.FeedbackRequest{Rating: rating, Comment: comment})
			if err != nil {
				return err
			}
			return printJSON(viewing)
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "rating 1-5")
	cmd.Flags().StringVar(&comment, "comment", "", "feedback comment")
	return cmd
}

func subscriptionCmd() *cobra.Command {
	var purchase bool

	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Check or purchase the tenant viewing subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			var sub *models.Subscription
			if purchase {
				sub, err = a.bookings.PurchaseSubscription(cmd.Context())
			} else {
				sub, err = a.bookings.CheckSubscriptionStatus(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(sub)
		},
	}

	cmd.Flags().BoolVar(&purchase, "purchase", false, "purchase a subscription")
	return cmd
}
