package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbaille/ventures/internal/app"
	"github.com/pbaille/ventures/internal/notification"
)

func notificationsCmd() *cobra.Command {
	var (
		recipient  string
		unreadOnly bool
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				ids, err := recipientOrCurrent(cmd, a, recipient)
				if err != nil {
					return err
				}

				list, err := a.Notifications.ListFor(cmd.Context(), notification.ListOptions{UnreadOnly: unreadOnly}, ids...)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Println("No notifications.")
					return nil
				}

				for _, n := range list {
					marker := " "
					if !n.Read {
						marker = "*"
					}
					fmt.Printf("%s %s  %s  %s\n", marker, shortID(n.ID), n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
					fmt.Printf("    %s\n", truncate(n.Message, 100))
				}
				return nil
			})
		},
	}

	cmd.PersistentFlags().StringVar(&recipient, "recipient", "", "recipient id (default: current user)")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")

	cmd.AddCommand(&cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				changed, err := a.Notifications.MarkRead(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if changed {
					fmt.Println("Marked as read")
				} else {
					fmt.Println("Nothing to mark (unknown id or already read)")
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification of the recipient as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				ids, err := recipientOrCurrent(cmd, a, recipient)
				if err != nil {
					return err
				}
				n, err := a.Notifications.MarkAllRead(cmd.Context(), ids...)
				if err != nil {
					return err
				}
				fmt.Printf("Marked %d notifications as read\n", n)
				return nil
			})
		},
	})

	return cmd
}

// recipientOrCurrent returns the explicit recipient, or every identity the
// current user may be notified under
func recipientOrCurrent(cmd *cobra.Command, a *app.App, recipient string) ([]string, error) {
	if recipient != "" {
		return []string{recipient}, nil
	}
	u, err := a.Identity.Current(cmd.Context())
	if err != nil {
		return nil, err
	}
	return u.RecipientIDs(), nil
}
