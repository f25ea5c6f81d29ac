package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs a root Cobra command for the CommitQ client.
// It registers the queue and actionitems command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "commitq",
		Short: "CommitQ client commands",
	}
	root.AddCommand(NewQueueCommand(baseURL))
	root.AddCommand(NewActionItemsCommand(baseURL))
	return root
}
