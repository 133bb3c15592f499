package extract

import "strings"

// Semantic column keys recognised in report tables.
const (
	ColumnDate    = "date"
	ColumnDay     = "day"
	ColumnTimeIn  = "time_in"
	ColumnTimeOut = "time_out"
	ColumnSite    = "site"
	ColumnNotes   = "notes"
	ColumnTotal   = "total"
)

// headerTokens maps header words to column keys. Order matters: the first
// matching token classifies the cell.
var headerTokens = []struct {
	token string
	key   string
}{
	{"תאריך", ColumnDate},
	{"יום", ColumnDay},
	{"כניסה", ColumnTimeIn},
	{"יציאה", ColumnTimeOut},
	{"אתר", ColumnSite},
	{"הערות", ColumnNotes},
	{"סהכ", ColumnTotal},
}

// totalTokens mark totals in free text, with and without the gershayim.
var totalTokens = []string{"סה\"כ", "סה״כ", "סהכ"}

// ClassifyHeader returns the column key of a header cell, or "".
// Quotes are ignored and reversed (visual-order) spellings are accepted.
func ClassifyHeader(cell string) string {
	cleaned := strings.ToLower(normalizeSpace(stripQuotes(cell)))
	if cleaned == "" {
		return ""
	}
	for _, ht := range headerTokens {
		if containsEither(cleaned, ht.token) {
			return ht.key
		}
	}
	return ""
}

// HeaderHits counts how many distinct header tokens occur in a row.
func HeaderHits(row []string) int {
	text := normalizeSpace(stripQuotes(strings.Join(row, " ")))
	hits := 0
	for _, ht := range headerTokens {
		if containsEither(text, ht.token) {
			hits++
		}
	}
	return hits
}

func hasTotalToken(s string) bool {
	for _, tok := range totalTokens {
		if strings.Contains(s, tok) || strings.Contains(s, reverse(tok)) {
			return true
		}
	}
	return false
}
