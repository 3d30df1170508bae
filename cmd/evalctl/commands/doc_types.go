package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// doc-types: list doc types, or suggest the best match for a document.
func docTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc-types",
		Short: "List registered doc types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docTypes, err := apiClient.ListDocTypes(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE")
			for _, dt := range docTypes {
				fmt.Fprintf(w, "%s\t%s\t%t\n", dt.ID, dt.Name, dt.IsActive)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(suggestCmd())
	return cmd
}

// doc-types suggest <text-file>: rank doc types against sample text.
func suggestCmd() *cobra.Command {
	var topK int
	cmd := &cobra.Command{
		Use:   "suggest <text-file>",
		Short: "Suggest doc types matching a sample document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			docTypes, err := apiClient.SuggestDocTypes(cmd.Context(), string(text), topK)
			if err != nil {
				return err
			}
			for _, dt := range docTypes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", dt.ID, dt.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "top", 3, "number of suggestions")
	return cmd
}
