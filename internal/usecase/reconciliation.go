package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// NormalizeUseCase reads a source document and stages its canonical entries.
type NormalizeUseCase struct {
	source  SourceRepository
	staging StagingRepository
	Log     *slog.Logger
}

// NewNormalizeUseCase creates a new instance of the usecase.
func NewNormalizeUseCase(source SourceRepository, staging StagingRepository, log *slog.Logger) *NormalizeUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &NormalizeUseCase{source: source, staging: staging, Log: log}
}

// Run extracts sourcePath, canonicalizes the rows and atomically replaces the
// staging file. The staging file is not touched when no row survives.
func (uc *NormalizeUseCase) Run(ctx context.Context, sourcePath, stagingPath string) ([]domain.CanonicalEntry, *domain.RawDocument, error) {
	doc, err := uc.source.ReadSource(ctx, sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read source: %w", err)
	}

	entries, err := Canonicalize(doc)
	if err != nil {
		return nil, doc, err
	}

	if err := uc.staging.WriteStaging(ctx, stagingPath, entries); err != nil {
		return nil, doc, fmt.Errorf("could not write staging file: %w", err)
	}

	uc.Log.Info("source staged",
		slog.String("source", sourcePath),
		slog.String("staging", stagingPath),
		slog.String("parser_mode", string(doc.Meta.ParserMode)),
		slog.Int("entries", len(entries)),
		slog.Int("warnings", len(doc.Meta.Warnings)),
	)
	return entries, doc, nil
}

// Request describes one reconciliation run.
type Request struct {
	Source      string
	StagingPath string
	Sheet       string
	ReportTitle string
	DryRun      bool
	Now         time.Time
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	normalize *NormalizeUseCase
	ledger    LedgerRepository
	Log       *slog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(normalize *NormalizeUseCase, ledger LedgerRepository, log *slog.Logger) *ReconciliationUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ReconciliationUseCase{normalize: normalize, ledger: ledger, Log: log}
}

// Run normalizes the source, matches it against the ledger sheet, writes the
// gap-fill patches in one batch and then replaces or deletes the change
// report. With DryRun nothing remote is written.
func (uc *ReconciliationUseCase) Run(ctx context.Context, req Request) (*domain.ReconciliationReport, error) {
	// Step 1: Normalization
	entries, doc, err := uc.normalize.Run(ctx, req.Source, req.StagingPath)
	if err != nil {
		return nil, err
	}

	// Step 2: Ledger snapshot
	snap, found, err := uc.ledger.GetLedger(ctx, req.Sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", domain.ErrLedgerSheetNotFound, req.Sheet)
	}

	// Step 3: Matching
	outcome := Reconcile(entries, snap)
	report := buildReport(req, doc, entries, outcome)

	uc.Log.Info("reconciled",
		slog.String("sheet", req.Sheet),
		slog.Int("source_dates", outcome.SourceDates),
		slog.Int("matched_dates", outcome.MatchedDates),
		slog.Int("missing_dates", len(outcome.Missing)),
		slog.Int("filled_cells", len(outcome.Patches)),
		slog.Int("changed_rows", len(outcome.Changes)),
	)
	if req.DryRun {
		return report, nil
	}

	// Step 4: Writes
	if len(outcome.Patches) > 0 {
		if err := uc.ledger.ApplyPatches(ctx, req.Sheet, outcome.Patches); err != nil {
			return nil, fmt.Errorf("could not apply ledger patches: %w", err)
		}
		report.Summary.PatchesApplied = true
	}

	if outcome.Clean() {
		if err := uc.ledger.DeleteChangeReport(ctx, req.ReportTitle); err != nil {
			return nil, fmt.Errorf("could not delete change report: %w", err)
		}
		report.Summary.ReportDeleted = true
		uc.Log.Info("ledger matches source, change report removed", slog.String("report", req.ReportTitle))
		return report, nil
	}

	if err := uc.ledger.ReplaceChangeReport(ctx, req.ReportTitle, outcome.Changes, req.Now); err != nil {
		return nil, fmt.Errorf("could not write change report: %w", err)
	}
	uc.Log.Info("change report written", slog.String("report", req.ReportTitle), slog.Int("rows", len(outcome.Changes)))
	return report, nil
}

func buildReport(req Request, doc *domain.RawDocument, entries []domain.CanonicalEntry, outcome Outcome) *domain.ReconciliationReport {
	report := &domain.ReconciliationReport{
		Summary: domain.ReconciliationSummary{
			Sheet:         req.Sheet,
			ReportTitle:   req.ReportTitle,
			SourceEntries: len(entries),
			SourceDates:   outcome.SourceDates,
			MatchedDates:  outcome.MatchedDates,
			FilledCells:   len(outcome.Patches),
			ChangedRows:   len(outcome.Changes),
			DryRun:        req.DryRun,
		},
		Changes:           make([]domain.ChangeRecord, 0, len(outcome.Changes)),
		MissingFromLedger: make([]string, 0, len(outcome.Missing)),
		Fills:             make([]domain.FillRecord, 0, len(outcome.Fills)),
		Patches:           make([]domain.CellPatch, 0, len(outcome.Patches)),
		SourceMeta:        doc.Meta,
	}
	report.Changes = append(report.Changes, outcome.Changes...)
	report.MissingFromLedger = append(report.MissingFromLedger, outcome.Missing...)
	report.Fills = append(report.Fills, outcome.Fills...)
	report.Patches = append(report.Patches, outcome.Patches...)

	if minutes, ok := outcome.TotalDiff(); ok {
		report.Summary.TotalDiffMinutes = minutes
		report.Summary.TotalDiff = timeparse.FormatSigned(minutes)
	}

	warnings := make([]string, 0, len(doc.Meta.Warnings)+len(outcome.Warnings))
	warnings = append(warnings, doc.Meta.Warnings...)
	report.Warnings = append(warnings, outcome.Warnings...)
	return report
}
