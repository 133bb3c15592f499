// Package console prints reconciliation results to a terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"hours-reconciliation/internal/domain"
)

var (
	red   = lipgloss.Color("#EF4444")
	green = lipgloss.Color("#10B981")
	muted = lipgloss.Color("#6B7280")
	amber = lipgloss.Color("#F59E0B")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	warningStyle = lipgloss.NewStyle().Foreground(amber)

	reportHeaders = []string{"Date", "Ledger in", "Ledger out", "Source in", "Source out", "Diff"}
)

const (
	colFactIn  = 3
	colFactOut = 4
	colDiff    = 5
)

// RenderReport writes the change table, the missing dates, the gap-fill
// summary and the warnings of report to w.
func RenderReport(w io.Writer, report *domain.ReconciliationReport) error {
	var b strings.Builder
	s := report.Summary

	mode := ""
	if s.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Sheet %s%s", s.Sheet, mode)))
	fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("source entries=%d dates=%d matched=%d",
		s.SourceEntries, s.SourceDates, s.MatchedDates)))

	if len(report.Changes) > 0 {
		fmt.Fprintln(&b, ChangeTable(report.Changes))
		if s.TotalDiff != "" {
			fmt.Fprintf(&b, "Total: %s\n", signStyle(s.TotalDiffMinutes).Render(s.TotalDiff))
		}
	} else {
		fmt.Fprintln(&b, "No discrepancies.")
	}

	if len(report.MissingFromLedger) > 0 {
		fmt.Fprintf(&b, "Missing from ledger (%d): %s\n", len(report.MissingFromLedger), strings.Join(report.MissingFromLedger, ", "))
	}

	if len(report.Fills) > 0 {
		fmt.Fprintf(&b, "Filled cells=%d, dates=%d\n", s.FilledCells, len(report.Fills))
		for _, f := range report.Fills {
			cells := make([]string, 0, len(f.Patches))
			for _, p := range f.Patches {
				cells = append(cells, fmt.Sprintf("%s=%s", domain.ColumnLetter(p.Column), p.Value))
			}
			fmt.Fprintf(&b, "  %s: %s\n", f.Date, strings.Join(cells, ", "))
		}
	}

	for _, warn := range report.Warnings {
		fmt.Fprintln(&b, warningStyle.Render("warning: "+warn))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ChangeTable lays records out as a bordered table. Source cells are red when
// earlier than the ledger and green when later; the diff is coloured by sign.
func ChangeTable(records []domain.ChangeRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		label := r.DateLabel
		if label == "" && r.Bonus {
			label = "  +"
		}
		rows = append(rows, []string{label, r.LedgerIn, r.LedgerOut, r.FactIn, r.FactOut, r.SignedDiff})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(reportHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(records) {
				return cellStyle
			}
			rec := records[row]
			switch col {
			case colFactIn:
				return cmpStyle(rec.CmpIn)
			case colFactOut:
				return cmpStyle(rec.CmpOut)
			case colDiff:
				if rec.DiffMinutes != nil {
					return signStyle(*rec.DiffMinutes).Padding(0, 1)
				}
			}
			return cellStyle
		})
	return t.String()
}

func cmpStyle(cmp int) lipgloss.Style {
	switch {
	case cmp < 0:
		return cellStyle.Foreground(red)
	case cmp > 0:
		return cellStyle.Foreground(green)
	}
	return cellStyle
}

func signStyle(minutes int) lipgloss.Style {
	switch {
	case minutes < 0:
		return lipgloss.NewStyle().Foreground(red)
	case minutes > 0:
		return lipgloss.NewStyle().Foreground(green)
	}
	return lipgloss.NewStyle()
}

// RenderPatches lists queued ledger writes, one per line, for dry runs.
func RenderPatches(w io.Writer, sheet string, patches []domain.CellPatch) error {
	if len(patches) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no ledger writes queued"))
		return err
	}
	for _, p := range patches {
		if _, err := fmt.Fprintf(w, "%s!%s <- %s\n", sheet, p.A1(), p.Value); err != nil {
			return err
		}
	}
	return nil
}
