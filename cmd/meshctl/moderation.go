package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	reportsCmd := &cobra.Command{Use: "reports", Short: "Moderation operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List flagged items awaiting review",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/reports")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	reportsCmd.AddCommand(listCmd)

	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Classify every flagged item and remove the harmful ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/reports/review", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	reportsCmd.AddCommand(reviewCmd)

	reviewedCmd := &cobra.Command{
		Use:   "reviewed",
		Short: "List reviewed items and their outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/reports/reviewed")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	reportsCmd.AddCommand(reviewedCmd)

	rootCmd.AddCommand(reportsCmd)
}
