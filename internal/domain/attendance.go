package domain

// Canonical field names as they appear in the source portal exports and in the
// staging file header.
const (
	FieldDate    = "תאריך"
	FieldTimeIn  = "כניסה"
	FieldTimeOut = "יציאה"
	FieldSite    = "אתר"
	FieldNotes   = "הערות"
)

// CanonicalColumns is the fixed column order of the staging file.
var CanonicalColumns = []string{FieldDate, FieldTimeIn, FieldTimeOut, FieldSite, FieldNotes}

// Row keys used by extractors that already emit canonical rows.
const (
	KeyDate    = "date"
	KeyTimeIn  = "time_in"
	KeyTimeOut = "time_out"
	KeySite    = "site"
	KeyNotes   = "notes"
)

// SourceKind identifies which reader produced a RawDocument.
type SourceKind string

const (
	SourceKindXLSX SourceKind = "xlsx"
	SourceKindXLS  SourceKind = "xls"
	SourceKindCSV  SourceKind = "csv"
	SourceKindPDF  SourceKind = "pdf"
)

// ParserMode names the extraction strategy that produced the rows.
type ParserMode string

const (
	ParserModeTable     ParserMode = "XLSX_TABLE"
	ParserModePDFTable  ParserMode = "TYPE_A_TABLE"
	ParserModePDFText   ParserMode = "TYPE_B_TEXT"
	ParserModeUndecided ParserMode = ""
)

// Warnings is an append-only ordered set of messages.
type Warnings []string

// Add appends msg unless it is already present.
func (w *Warnings) Add(msg string) {
	for _, existing := range *w {
		if existing == msg {
			return
		}
	}
	*w = append(*w, msg)
}

// DocumentMeta is the document-level part of a RawDocument.
type DocumentMeta struct {
	SourcePath string     `json:"source_path"`
	SourceKind SourceKind `json:"source_kind"`
	ParserMode ParserMode `json:"parser_mode"`
	Month      int        `json:"month,omitempty"` // 0 when unknown
	Year       int        `json:"year,omitempty"`  // 0 when unknown
	MonthName  string     `json:"month_name,omitempty"`
	Headers    []string   `json:"headers"`
	Pages      int        `json:"pages,omitempty"`
	Warnings   Warnings   `json:"warnings"`

	// Report-level figures printed by the portal, PDF sources only.
	ReportDate      string `json:"report_date,omitempty"`
	MonthTotalHours string `json:"month_total_hours,omitempty"`
	MonthTotalDays  string `json:"month_total_days,omitempty"`
	Trips           string `json:"trips,omitempty"`
	TotalRow        string `json:"total_row,omitempty"`
}

// HasPeriod reports whether both month and year were inferred.
func (m DocumentMeta) HasPeriod() bool {
	return m.Month >= 1 && m.Month <= 12 && m.Year > 0
}

// RawRow is one extracted row, keyed by source header or canonical key.
type RawRow map[string]string

// RawDocument is the as-extracted intermediate produced per parse.
type RawDocument struct {
	Meta DocumentMeta `json:"meta"`
	Rows []RawRow     `json:"rows"`
}

// CanonicalEntry is a normalized attendance record.
type CanonicalEntry struct {
	Date    string `json:"date"`     // DD.MM.YYYY
	TimeIn  string `json:"time_in"`  // HH:MM or empty
	TimeOut string `json:"time_out"` // HH:MM or empty
	Site    string `json:"site"`
	Notes   string `json:"notes"`
}

// IsEmpty reports whether every field is blank.
func (e CanonicalEntry) IsEmpty() bool {
	return e.Date == "" && e.TimeIn == "" && e.TimeOut == "" && e.Site == "" && e.Notes == ""
}

// Interval returns the entry's entry/exit pair.
func (e CanonicalEntry) Interval() Interval {
	return Interval{In: e.TimeIn, Out: e.TimeOut}
}
