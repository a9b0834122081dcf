package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Post operations"}

	var author, feed string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, optionally filtered by author or feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/posts"
			sep := "?"
			if author != "" {
				path += sep + "author=" + author
				sep = "&"
			}
			if feed != "" {
				path += sep + "feedName=" + feed
			}
			data, err := doGet(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&author, "author", "u", "", "Filter by author username")
	listCmd.Flags().StringVarP(&feed, "feed", "f", "", "Filter by feed name")
	postsCmd.AddCommand(listCmd)

	var content, color, postFeed string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post, optionally attached to a feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"content": content}
			if color != "" {
				payload["options"] = map[string]interface{}{"backgroundColor": color}
			}
			if postFeed != "" {
				payload["feedName"] = postFeed
			}
			data, err := doPostJSON("/api/posts", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&content, "content", "c", "", "Post content (required)")
	createCmd.Flags().StringVar(&color, "color", "", "Background color option")
	createCmd.Flags().StringVarP(&postFeed, "feed", "f", "", "Feed name to attach the post to")
	_ = createCmd.MarkFlagRequired("content")
	postsCmd.AddCommand(createCmd)

	rootCmd.AddCommand(postsCmd)
}
