package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evaldesk/evaldesk/pkg/client"
)

// list: show evaluations, optionally filtered.
func listCmd() *cobra.Command {
	var opts client.EvaluationListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evaluations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluations, err := apiClient.ListEvaluations(cmd.Context(), opts)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDOCUMENT\tSTATUS\tSCORE\tCREATED")
			for _, e := range evaluations {
				score := "-"
				if e.Status == "completed" {
					score = fmt.Sprintf("%.2f", e.OverallScore)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.DocumentName, e.Status, score, e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&opts.DocTypeID, "doc-type", "", "filter by doc type ID")
	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "filter by project ID")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort field (created_at, overall_score, status, document_name)")
	cmd.Flags().StringVar(&opts.Order, "order", "", "sort order (asc, desc)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "items per page")
	return cmd
}
