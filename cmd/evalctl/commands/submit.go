package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// submit <document.pdf>: upload a document for grading.
func submitCmd() *cobra.Command {
	var (
		docTypeID     string
		criteriaSetID string
		projectID     string
		watch         bool
	)
	cmd := &cobra.Command{
		Use:   "submit <document.pdf>",
		Short: "Upload a PDF and start an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apiClient.SubmitEvaluation(cmd.Context(), args[0], docTypeID, criteriaSetID, projectID)
			if err != nil {
				return err
			}
			fmt.Println(id)
			if !watch {
				return nil
			}
			return watchEvaluation(cmd, id)
		},
	}
	cmd.Flags().StringVar(&docTypeID, "doc-type", "", "doc type ID")
	cmd.Flags().StringVar(&criteriaSetID, "criteria-set", "", "criteria set ID")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (optional)")
	cmd.Flags().BoolVar(&watch, "watch", false, "poll until the evaluation finishes")
	_ = cmd.MarkFlagRequired("doc-type")
	_ = cmd.MarkFlagRequired("criteria-set")
	return cmd
}
