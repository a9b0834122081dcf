package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	reactionsCmd := &cobra.Command{Use: "reactions", Short: "Reaction operations"}

	var item, kind string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "React to an item (replaces any earlier reaction)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/reactions", map[string]interface{}{
				"itemId": item,
				"kind":   kind,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&item, "item", "i", "", "Item id (required)")
	addCmd.Flags().StringVarP(&kind, "kind", "k", "", "Reaction kind (required)")
	_ = addCmd.MarkFlagRequired("item")
	_ = addCmd.MarkFlagRequired("kind")
	reactionsCmd.AddCommand(addCmd)

	var removeItem string
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove your reaction from an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doDeleteJSON("/api/reactions", map[string]interface{}{
				"itemId": removeItem,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	removeCmd.Flags().StringVarP(&removeItem, "item", "i", "", "Item id (required)")
	_ = removeCmd.MarkFlagRequired("item")
	reactionsCmd.AddCommand(removeCmd)

	countsCmd := &cobra.Command{
		Use:   "counts ITEM_ID",
		Short: "Show reaction counts for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/reactions/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	reactionsCmd.AddCommand(countsCmd)

	rootCmd.AddCommand(reactionsCmd)
}
