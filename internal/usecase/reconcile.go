package usecase

import (
	"fmt"
	"sort"
	"strings"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// Outcome is the result of matching canonical entries against one ledger snapshot.
type Outcome struct {
	Changes      []domain.ChangeRecord
	Missing      []string
	Patches      []domain.CellPatch
	Fills        []domain.FillRecord
	Warnings     []string
	SourceDates  int
	MatchedDates int
}

// Clean reports whether there is neither a discrepancy nor a missing date.
func (o Outcome) Clean() bool {
	return len(o.Changes) == 0 && len(o.Missing) == 0
}

// TotalDiff sums the diffs of every change that carries one.
func (o Outcome) TotalDiff() (minutes int, ok bool) {
	for _, c := range o.Changes {
		if c.DiffMinutes != nil {
			minutes += *c.DiffMinutes
			ok = true
		}
	}
	return minutes, ok
}

type dateGroup struct {
	date    string
	entries []domain.CanonicalEntry
}

// Reconcile compares entries with the ledger date by date. Empty ledger cells
// are gap-filled from the source through queued patches; non-empty cells are
// never overwritten, their disagreements become ChangeRecords instead. The
// bonus pair is only filled when the ledger's primary pair was blank before
// this run. Entries must already be in canonical order.
func Reconcile(entries []domain.CanonicalEntry, snap domain.LedgerSnapshot) Outcome {
	var out Outcome

	index := make(map[string]domain.LedgerRow, len(snap.Rows))
	for _, row := range snap.Rows {
		key := strings.TrimSpace(timeparse.StripBidi(row.Date))
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = row
		}
	}

	groups := groupByDate(entries)
	out.SourceDates = len(groups)
	layout := snap.Layout

	for _, g := range groups {
		if len(g.entries) > 2 {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %d intervals in source, only the first two are reconciled", g.date, len(g.entries)))
		}
		row, found := lookup(index, g.date)
		if !found {
			out.Missing = append(out.Missing, g.date)
			continue
		}
		out.MatchedDates++

		srcPrimary := g.entries[0].Interval()
		var srcBonus domain.Interval
		hasBonus := len(g.entries) > 1
		if hasBonus {
			srcBonus = g.entries[1].Interval()
		}

		ledPrimary := trimInterval(row.Primary)
		ledBonus := trimInterval(row.Bonus)
		primaryWasEmpty := ledPrimary.IsEmpty()

		fill := domain.FillRecord{Date: g.date}
		ledPrimary = gapFill(&fill, row.Row, layout.PrimaryInColumn, layout.PrimaryOutColumn, ledPrimary, srcPrimary)
		if primaryWasEmpty && hasBonus {
			ledBonus = gapFill(&fill, row.Row, layout.BonusInColumn, layout.BonusOutColumn, ledBonus, srcBonus)
		}
		if len(fill.Patches) > 0 {
			out.Fills = append(out.Fills, fill)
			out.Patches = append(out.Patches, fill.Patches...)
		}

		primaryDiffers := differs(srcPrimary, ledPrimary)
		if primaryDiffers {
			out.Changes = append(out.Changes, changeRecord(g.date, false, srcPrimary, ledPrimary))
		}
		if (hasBonus || !ledBonus.IsEmpty()) && differs(srcBonus, ledBonus) {
			label := g.date
			if primaryDiffers {
				label = ""
			}
			out.Changes = append(out.Changes, changeRecord(label, true, srcBonus, ledBonus))
		}
	}
	return out
}

// groupByDate keeps the first-seen order of dates and of entries within a date.
func groupByDate(entries []domain.CanonicalEntry) []dateGroup {
	var groups []dateGroup
	pos := make(map[string]int)
	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		i, ok := pos[e.Date]
		if !ok {
			i = len(groups)
			pos[e.Date] = i
			groups = append(groups, dateGroup{date: e.Date})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	// Primary is the earliest entry of the day; entries without a time go last.
	for _, g := range groups {
		sort.SliceStable(g.entries, func(i, j int) bool {
			return entryMinutes(g.entries[i]) < entryMinutes(g.entries[j])
		})
	}
	return groups
}

func lookup(index map[string]domain.LedgerRow, date string) (domain.LedgerRow, bool) {
	for _, v := range timeparse.DateVariants(date) {
		if row, ok := index[v]; ok {
			return row, true
		}
	}
	return domain.LedgerRow{}, false
}

// gapFill queues a patch for every empty ledger cell the source can supply
// and returns the ledger pair as it will read after the patches.
func gapFill(fill *domain.FillRecord, row, inCol, outCol int, ledger, source domain.Interval) domain.Interval {
	if ledger.In == "" && source.In != "" {
		fill.Patches = append(fill.Patches, domain.CellPatch{Row: row, Column: inCol, Value: source.In})
		ledger.In = source.In
	}
	if ledger.Out == "" && source.Out != "" {
		fill.Patches = append(fill.Patches, domain.CellPatch{Row: row, Column: outCol, Value: source.Out})
		ledger.Out = source.Out
	}
	return ledger
}

func trimInterval(i domain.Interval) domain.Interval {
	return domain.Interval{In: ledgerValue(i.In), Out: ledgerValue(i.Out)}
}

// ledgerValue normalizes a ledger cell when it holds a time and keeps any
// other text as written, so that it still counts as non-empty.
func ledgerValue(raw string) string {
	s := strings.TrimSpace(timeparse.StripBidi(raw))
	if t := timeparse.NormalizeTime(s); t != "" {
		return t
	}
	return s
}

func differs(source, ledger domain.Interval) bool {
	return source.In != ledger.In || source.Out != ledger.Out
}

func changeRecord(label string, bonus bool, source, ledger domain.Interval) domain.ChangeRecord {
	rec := domain.ChangeRecord{
		DateLabel: label,
		Bonus:     bonus,
		FactIn:    source.In,
		FactOut:   source.Out,
		LedgerIn:  ledger.In,
		LedgerOut: ledger.Out,
		CmpIn:     compareTimes(source.In, ledger.In),
		CmpOut:    compareTimes(source.Out, ledger.Out),
	}
	if d, ok := signedDiff(source, ledger); ok {
		rec.DiffMinutes = &d
		rec.SignedDiff = timeparse.FormatSigned(d)
	}
	return rec
}

// compareTimes is -1 when the source time is earlier, 1 when later, and 0
// when equal or when either side is not a time.
func compareTimes(source, ledger string) int {
	s, okS := timeparse.Minutes(source)
	l, okL := timeparse.Minutes(ledger)
	if !okS || !okL || s == l {
		return 0
	}
	if s < l {
		return -1
	}
	return 1
}

// signedDiff is (source duration - ledger duration) in minutes, defined only
// when both pairs are complete.
func signedDiff(source, ledger domain.Interval) (int, bool) {
	si, ok1 := timeparse.Minutes(source.In)
	so, ok2 := timeparse.Minutes(source.Out)
	li, ok3 := timeparse.Minutes(ledger.In)
	lo, ok4 := timeparse.Minutes(ledger.Out)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}
	return (so - si) - (lo - li), true
}
