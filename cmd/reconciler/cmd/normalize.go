package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [source]",
	Short: "Extract a report and write the canonical staging file",
	Long: `Extract the attendance rows of a source document and atomically replace
the staging file with them, sorted by date and entry time.

Examples:
  reconciler normalize Attendance_1.26.xlsx
  DEBUG_PDF=1 reconciler normalize report.pdf --staging /tmp/local_data.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := sourceArg(args)
		if err != nil {
			return err
		}

		entries, doc, err := newNormalizeUseCase().Run(cmd.Context(), source, stagingPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{"meta": doc.Meta, "entries": entries})
		}

		fmt.Fprintf(out, "%s: %d entries staged to %s (%s)\n", source, len(entries), stagingPath, doc.Meta.ParserMode)
		for _, w := range doc.Meta.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
