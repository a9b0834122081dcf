package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	feedsCmd := &cobra.Command{Use: "feeds", Short: "Feed operations"}

	var name, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/feeds", map[string]interface{}{
				"name":        name,
				"description": description,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Feed name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Feed description")
	_ = createCmd.MarkFlagRequired("name")
	feedsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/feeds")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	feedsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get a feed by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/feeds/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	feedsCmd.AddCommand(getCmd)

	rootCmd.AddCommand(feedsCmd)
}
