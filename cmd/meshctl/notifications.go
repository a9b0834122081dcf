package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	notificationsCmd := &cobra.Command{Use: "notifications", Short: "Notification operations"}

	deliverCmd := &cobra.Command{
		Use:   "deliver",
		Short: "Deliver every due pending notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/notifications/deliver", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	notificationsCmd.AddCommand(deliverCmd)

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/notifications/pending")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	notificationsCmd.AddCommand(pendingCmd)

	deliveredCmd := &cobra.Command{
		Use:   "delivered",
		Short: "List delivered notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/notifications/delivered")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	notificationsCmd.AddCommand(deliveredCmd)

	rootCmd.AddCommand(notificationsCmd)
}
