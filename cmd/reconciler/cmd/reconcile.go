package cmd

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hours-reconciliation/internal/adapter/console"
	"hours-reconciliation/internal/adapter/sheets"
	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/usecase"
)

var (
	period string
	dryRun bool

	periodRe = regexp.MustCompile(`^(?:[1-9]|1[0-2])\.\d{2}$`)
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [source]",
	Short: "Fill ledger gaps from a report and record every discrepancy",
	Long: `Normalize the source document, then compare it with the ledger sheet of
the period (M.YY, the current month by default).

Empty ledger cells are patched in one batch. Differences are written to the
change report sheet, which is deleted again once the ledger agrees with the
source and no source date is missing from it.

Examples:
  reconciler reconcile Attendance_1.26.xlsx --period 1.26
  reconciler reconcile report.pdf --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := sourceArg(args)
		if err != nil {
			return err
		}
		if err := cfg.RequireLedger(); err != nil {
			return err
		}

		now := time.Now().In(cfg.Location())
		sheet := strings.TrimSpace(period)
		if sheet == "" {
			sheet = cfg.LedgerSheet(now)
		}
		if !periodRe.MatchString(sheet) {
			return fmt.Errorf("period %q is not of the form M.YY", sheet)
		}

		ctx := cmd.Context()
		ledger, err := sheets.NewRepository(ctx, cfg.Ledger.SpreadsheetID, cfg.Ledger.CredentialsFile, domain.DefaultLedgerLayout, logger)
		if err != nil {
			return err
		}
		uc := usecase.NewReconciliationUseCase(newNormalizeUseCase(), ledger, logger)

		report, err := uc.Run(ctx, usecase.Request{
			Source:      source,
			StagingPath: stagingPath,
			Sheet:       sheet,
			ReportTitle: cfg.ReportTitle(sheet),
			DryRun:      dryRun,
			Now:         now,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		if err := console.RenderReport(out, report); err != nil {
			return err
		}
		if dryRun {
			return console.RenderPatches(out, sheet, report.Patches)
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&period, "period", "", "ledger sheet to reconcile, M.YY (LEDGER_SHEET, default current month)")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute patches and discrepancies without writing to the ledger")
	rootCmd.AddCommand(reconcileCmd)
}
