package domain

// ChangeRecord is one row of the discrepancy report.
type ChangeRecord struct {
	DateLabel  string `json:"date_label"` // empty on a bonus row that follows its primary row
	Bonus      bool   `json:"bonus"`
	FactIn     string `json:"fact_in"`
	FactOut    string `json:"fact_out"`
	LedgerIn   string `json:"ledger_in"`
	LedgerOut  string `json:"ledger_out"`
	SignedDiff string `json:"signed_diff"` // "+H:MM"/"-H:MM", empty when either pair is incomplete
	// DiffMinutes is nil whenever SignedDiff is empty.
	DiffMinutes *int `json:"diff_minutes,omitempty"`
	CmpIn       int  `json:"cmp_in"`  // -1 source earlier, 1 source later, 0 equal or not comparable
	CmpOut      int  `json:"cmp_out"` // same encoding as CmpIn
}

// FillRecord summarises the gap-fill writes queued for one date.
type FillRecord struct {
	Date    string      `json:"date"`
	Patches []CellPatch `json:"patches"`
}

// ReconciliationSummary provides high-level statistics of a run.
type ReconciliationSummary struct {
	Sheet            string `json:"sheet"`
	ReportTitle      string `json:"report_title"`
	SourceEntries    int    `json:"source_entries"`
	SourceDates      int    `json:"source_dates"`
	MatchedDates     int    `json:"matched_dates"`
	FilledCells      int    `json:"filled_cells"`
	ChangedRows      int    `json:"changed_rows"`
	TotalDiffMinutes int    `json:"total_diff_minutes"`
	TotalDiff        string `json:"total_diff"` // empty when no row carries a diff
	PatchesApplied   bool   `json:"patches_applied"`
	ReportDeleted    bool   `json:"report_deleted"`
	DryRun           bool   `json:"dry_run"`
}

// ReconciliationReport is the top-level result of a run.
type ReconciliationReport struct {
	Summary           ReconciliationSummary `json:"summary"`
	Changes           []ChangeRecord        `json:"changes"`
	MissingFromLedger []string              `json:"missing_from_ledger"`
	Fills             []FillRecord          `json:"fills"`
	Patches           []CellPatch           `json:"patches"`
	Warnings          []string              `json:"warnings"`
	SourceMeta        DocumentMeta          `json:"source_meta"`
}

// Clean reports whether the run found neither discrepancies nor missing dates.
func (r *ReconciliationReport) Clean() bool {
	return len(r.Changes) == 0 && len(r.MissingFromLedger) == 0
}
