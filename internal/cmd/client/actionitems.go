package client

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewActionItemsCommand constructs the `actionitems` command group.
func NewActionItemsCommand(baseURL BaseURLFunc) *cobra.Command {
	aiCmd := &cobra.Command{Use: "actionitems", Short: "Action item operations"}
	aiCmd.PersistentFlags().String("team", "", "Team (server default when empty)")

	aiCmd.AddCommand(
		newActionItemsAddCommand(baseURL),
		newActionItemsCompleteCommand(baseURL),
		newActionItemsUncompleteCommand(baseURL),
		newActionItemsRemoveCommand(baseURL),
		newActionItemsListCommand(baseURL),
	)
	return aiCmd
}

func newActionItemsAddCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an action item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			team, _ := cmd.Flags().GetString("team")
			out, err := postAction(baseURL, "actionItems:add", team, map[string]any{
				"title":       title,
				"description": description,
			})
			if err != nil {
				return err
			}
			return printJSON(out["item"])
		},
	}
	cmd.Flags().String("title", "", "Item title")
	cmd.Flags().String("description", "", "Optional description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newActionItemsCompleteCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark an action item completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			imagePath, _ := cmd.Flags().GetString("image")
			team, _ := cmd.Flags().GetString("team")

			data := map[string]any{"id": id}
			if imagePath != "" {
				url, err := imageDataURL(imagePath)
				if err != nil {
					return err
				}
				data["image"] = url
				data["imageName"] = filepath.Base(imagePath)
			}
			if _, err := postAction(baseURL, "actionItems:complete", team, data); err != nil {
				return err
			}
			fmt.Println("completed:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Action item id")
	cmd.Flags().String("image", "", "Optional proof-of-completion image file")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newActionItemsUncompleteCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncomplete",
		Short: "Move a completed item back to pending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			team, _ := cmd.Flags().GetString("team")
			if _, err := postAction(baseURL, "actionItems:uncomplete", team, map[string]any{"id": id}); err != nil {
				return err
			}
			fmt.Println("uncompleted:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Action item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newActionItemsRemoveCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an action item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			team, _ := cmd.Flags().GetString("team")
			if _, err := postAction(baseURL, "actionItems:remove", team, map[string]any{"id": id}); err != nil {
				return err
			}
			fmt.Println("removed:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Action item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newActionItemsListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the team's action items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			team, _ := cmd.Flags().GetString("team")
			out, err := postAction(baseURL, "actionItems:get-state", team, map[string]any{})
			if err != nil {
				return err
			}
			return printJSON(out["data"])
		},
	}
}
