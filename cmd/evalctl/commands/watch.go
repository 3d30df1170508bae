package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaldesk/evaldesk/pkg/client"
)

// watch <evaluation-id>: poll until the evaluation finishes.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <evaluation-id>",
		Short: "Poll an evaluation until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchEvaluation(cmd, args[0])
		},
	}
}

func watchEvaluation(cmd *cobra.Command, id string) error {
	poller := client.NewPoller(apiClient, pollInterval())
	status, err := poller.WaitForCompletion(cmd.Context(), id, func(s client.EvaluationStatus) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d%%\n", s.Status, s.Progress)
	})
	if err != nil {
		return err
	}
	if status.Status == "failed" {
		return fmt.Errorf("evaluation failed: %s", status.ErrorMessage)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "overall score: %.2f\n", status.OverallScore)
	return nil
}
