package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewQueueCommand constructs the `queue` command group and subcommands.
func NewQueueCommand(baseURL BaseURLFunc) *cobra.Command {
	queueCmd := &cobra.Command{Use: "queue", Short: "Queue operations"}
	queueCmd.PersistentFlags().String("team", "", "Team (server default when empty)")

	queueCmd.AddCommand(
		newQueueAddCommand(baseURL),
		newQueueRemoveCommand(baseURL),
		newQueueListCommand(baseURL),
		newQueueStartTimerCommand(baseURL),
		newQueueStopTimerCommand(baseURL),
	)
	return queueCmd
}

func newQueueAddCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Join the queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			fastTrack, _ := cmd.Flags().GetBool("fast-track")
			team, _ := cmd.Flags().GetString("team")
			out, err := postAction(baseURL, "queue:add", team, map[string]any{
				"name":      name,
				"fastTrack": fastTrack,
			})
			if err != nil {
				return err
			}
			return printJSON(out["item"])
		},
	}
	cmd.Flags().String("name", "", "Display name to enqueue")
	cmd.Flags().Bool("fast-track", false, "Place ahead of non-fast-track items")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newQueueRemoveCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a queue item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			team, _ := cmd.Flags().GetString("team")
			if _, err := postAction(baseURL, "queue:remove", team, map[string]any{"id": id}); err != nil {
				return err
			}
			fmt.Println("removed:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Queue item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newQueueListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the team's queue state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			team, _ := cmd.Flags().GetString("team")
			out, err := postAction(baseURL, "queue:get-state", team, map[string]any{})
			if err != nil {
				return err
			}
			return printJSON(out["data"])
		},
	}
}

func newQueueStartTimerCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-timer",
		Short: "Start the serving countdown for the first item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			durationMs, _ := cmd.Flags().GetInt64("duration-ms")
			team, _ := cmd.Flags().GetString("team")
			if _, err := postAction(baseURL, "queue:start-timer", team, map[string]any{
				"id":       id,
				"duration": durationMs,
			}); err != nil {
				return err
			}
			fmt.Println("timer started:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Queue item id")
	cmd.Flags().Int64("duration-ms", 300000, "Countdown duration in milliseconds")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newQueueStopTimerCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop-timer",
		Short: "Stop the serving countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			team, _ := cmd.Flags().GetString("team")
			if _, err := postAction(baseURL, "queue:stop-timer", team, map[string]any{"id": id}); err != nil {
				return err
			}
			fmt.Println("timer stopped:", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "Queue item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
