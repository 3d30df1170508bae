package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// export <evaluation-id>: download the graded report.
func exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <evaluation-id>",
		Short: "Download a completed evaluation as PDF or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pdf" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q (pdf or xlsx)", format)
			}
			data, err := apiClient.ExportEvaluation(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("evaluation-%s.%s", args[0], format)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pdf", "export format (pdf or xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default evaluation-<id>.<format>)")
	return cmd
}
