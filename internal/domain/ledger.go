package domain

import "strconv"

// Interval is an entry/exit pair in HH:MM form. Either side may be empty.
type Interval struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// IsEmpty reports whether both sides are blank.
func (i Interval) IsEmpty() bool { return i.In == "" && i.Out == "" }

// IsComplete reports whether both sides are present.
func (i Interval) IsComplete() bool { return i.In != "" && i.Out != "" }

// LedgerRow is one row of the remote ledger.
type LedgerRow struct {
	Row     int      `json:"row"` // 1-based
	Date    string   `json:"date"`
	Primary Interval `json:"primary"`
	Bonus   Interval `json:"bonus"`
}

// LedgerLayout locates the ledger cells inside a row, as 1-based column numbers.
type LedgerLayout struct {
	DateColumn       int
	PrimaryInColumn  int
	PrimaryOutColumn int
	BonusInColumn    int
	BonusOutColumn   int
}

// DefaultLedgerLayout is date in B, primary pair in C/D and bonus pair in K/L.
var DefaultLedgerLayout = LedgerLayout{
	DateColumn:       2,
	PrimaryInColumn:  3,
	PrimaryOutColumn: 4,
	BonusInColumn:    11,
	BonusOutColumn:   12,
}

// FirstColumn returns the leftmost column the layout reads.
func (l LedgerLayout) FirstColumn() int {
	return minInt(l.DateColumn, l.PrimaryInColumn, l.PrimaryOutColumn, l.BonusInColumn, l.BonusOutColumn)
}

// LastColumn returns the rightmost column the layout reads.
func (l LedgerLayout) LastColumn() int {
	return maxInt(l.DateColumn, l.PrimaryInColumn, l.PrimaryOutColumn, l.BonusInColumn, l.BonusOutColumn)
}

// LedgerSnapshot is a read-only view of the ledger for one period.
type LedgerSnapshot struct {
	Sheet  string
	Layout LedgerLayout
	Rows   []LedgerRow
}

// CellPatch is a pending single-cell write to the ledger.
type CellPatch struct {
	Row    int    `json:"row"`    // 1-based
	Column int    `json:"column"` // 1-based
	Value  string `json:"value"`
}

// A1 returns the patch address in A1 notation, e.g. "C12".
func (p CellPatch) A1() string {
	return ColumnLetter(p.Column) + strconv.Itoa(p.Row)
}

// ColumnLetter converts a 1-based column number into its spreadsheet letters.
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var out []byte
	for col > 0 {
		col--
		out = append([]byte{byte('A' + col%26)}, out...)
		col /= 26
	}
	return string(out)
}

func minInt(first int, rest ...int) int {
	m := first
	for _, v := range rest {
		if v < m {
			m = v
		}
	}
	return m
}

func maxInt(first int, rest ...int) int {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}
