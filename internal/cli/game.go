package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/model"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your recent matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := app.Client.MatchHistory(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).Print(matches)
			return nil
		},
	}
}

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Matchmaking commands",
	}

	cmd.AddCommand(newQueueJoinCmd())

	return cmd
}

func newQueueJoinCmd() *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := app.Client.JoinQueue(cmd.Context(), queue)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(ticket)
			return nil
		},
	}

	cmd.Flags().StringVarP(&queue, "queue", "q", model.DefaultQueue, "Queue name")

	return cmd
}
