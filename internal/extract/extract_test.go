package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/domain"
)

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{cell: "תאריך", want: ColumnDate},
		{cell: "ךיראת", want: ColumnDate},
		{cell: "יום בשבוע", want: ColumnDay},
		{cell: "ת.כניסה", want: ColumnTimeIn},
		{cell: "הסינכ", want: ColumnTimeIn},
		{cell: "יציאה", want: ColumnTimeOut},
		{cell: "אתר", want: ColumnSite},
		{cell: "הערות", want: ColumnNotes},
		{cell: "סה\"כ שעות", want: ColumnTotal},
		{cell: "סה״כ", want: ColumnTotal},
		{cell: "שעות", want: ""},
		{cell: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHeader(tt.cell))
		})
	}
}

func TestHeaderHits(t *testing.T) {
	assert.Equal(t, 4, HeaderHits([]string{"תאריך", "כניסה", "יציאה", "סה\"כ"}))
	assert.Equal(t, 0, HeaderHits([]string{"28/01/2026", "07:00", "15:30"}))
}

func TestInferPeriod(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Period
	}{
		{name: "month name and bare year", text: "דוח נוכחות לחודש ינואר 2026", want: Period{Month: 1, Year: 2026, MonthName: "ינואר"}},
		{name: "reversed month name", text: "ראוני 2026", want: Period{Month: 1, Year: 2026, MonthName: "ינואר"}},
		{name: "labelled two digit year with numeric month", text: "שנה: 25 תקופה 03/25", want: Period{Month: 3, Year: 2025}},
		{name: "numeric month and year only", text: "report 11/25", want: Period{Month: 11, Year: 2025}},
		{name: "labelled year out of range ignored", text: "שנה 1999 מרץ", want: Period{Month: 3, MonthName: "מרץ"}},
		{name: "nothing", text: "hello", want: Period{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferPeriod(tt.text))
		})
	}
}

func TestExtractFigures(t *testing.T) {
	text := "תאריך הדוח: 01/02/2026\nשעות עבודה בפועל: 168:30\nימי עבודה בפועל: 21\nנסיעות: 12,5\n"

	got := ExtractFigures(text)

	assert.Equal(t, Figures{
		ReportDate:      "01.02.2026",
		MonthTotalHours: "168:30",
		MonthTotalDays:  "21",
		Trips:           "12.50",
	}, got)
}

func TestExtractFigures_VisualOrder(t *testing.T) {
	got := ExtractFigures("50.12 :תועיסנ")
	assert.Equal(t, "50.12", got.Trips)
	assert.Empty(t, got.ReportDate)
}

func TestSelectTimePair(t *testing.T) {
	tests := []struct {
		name    string
		times   []string
		wantIn  string
		wantOut string
		wantOK  bool
	}{
		{name: "closest to a full shift", times: []string{"09:00", "13:00", "17:30"}, wantIn: "09:00", wantOut: "17:30", wantOK: true},
		{name: "two times reordered", times: []string{"15:00", "07:00"}, wantIn: "07:00", wantOut: "15:00", wantOK: true},
		{name: "placeholders dropped", times: []string{"00:00", "08:00", "16:00", "00:01"}, wantIn: "08:00", wantOut: "16:00", wantOK: true},
		{name: "single time", times: []string{"08:00"}},
		{name: "only placeholders left", times: []string{"00:00", "00:01", "08:00"}},
		{name: "no plausible duration", times: []string{"08:00", "09:00", "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, ok := SelectTimePair(tt.times)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIn, in)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestTableStrategy_Extract(t *testing.T) {
	doc := Document{Pages: []Page{{
		Number: 1,
		Tables: []Table{{
			{"דוח נוכחות", "", "", "", ""},
			{"תאריך", "כניסה", "יציאה", "הערות", "סה\"כ"},
			{"28/01/2026", "07:00", "15:30", "", "8:30"},
			{"29/01/2026", "", "", "", ""},
			{"", "", "", "", ""},
			{"", "", "", "", "251:00"},
			{"", "", "", "", "240:00"},
			{"30/01/2026", "08:00", "", " חופשה ", ""},
		}},
	}}}

	res := TableStrategy{Options: DefaultOptions()}.Extract(doc, Period{Month: 1, Year: 2026})

	assert.Equal(t, domain.ParserModePDFTable, res.Mode)
	assert.Equal(t, []string{"תאריך", "כניסה", "יציאה", "הערות", "סה\"כ"}, res.Headers)
	assert.Equal(t, "251:00", res.TotalRow)
	assert.Empty(t, res.Issues)
	assert.Equal(t, []domain.RawRow{
		{domain.KeyDate: "28.01.2026", domain.KeyTimeIn: "07:00", domain.KeyTimeOut: "15:30", domain.KeySite: "", domain.KeyNotes: ""},
		{domain.KeyDate: "30.01.2026", domain.KeyTimeIn: "08:00", domain.KeyTimeOut: "", domain.KeySite: "", domain.KeyNotes: "חופשה"},
	}, res.Rows)
}

func TestTableStrategy_CoverageScanAndDayColumn(t *testing.T) {
	doc := Document{Pages: []Page{{
		Tables: []Table{
			{
				{"יום", "שעות", "", "הערות"},
				{"5", "07:00", "15:00", ""},
				{"6", "16:00", "08:00", "00:00"},
			},
			{
				{"a", "b"},
				{"c", "d"},
			},
		},
	}}}

	res := TableStrategy{}.Extract(doc, Period{Month: 1, Year: 2026})

	assert.Equal(t, []string{"יום", "שעות", "COL_3", "הערות"}, res.Headers)
	assert.Equal(t, []Issue{{Line: "header_not_found", Reason: "no header row"}}, res.Issues)
	if assert.Len(t, res.Rows, 2) {
		assert.Equal(t, "05.01.2026", res.Rows[0][domain.KeyDate])
		assert.Equal(t, "07:00", res.Rows[0][domain.KeyTimeIn])
		assert.Equal(t, "15:00", res.Rows[0][domain.KeyTimeOut])
		assert.Equal(t, "06.01.2026", res.Rows[1][domain.KeyDate])
		assert.Equal(t, "08:00", res.Rows[1][domain.KeyTimeIn])
		assert.Equal(t, "16:00", res.Rows[1][domain.KeyTimeOut])
	}
}

func TestTableStrategy_UnknownPeriodKeepsRawDay(t *testing.T) {
	doc := Document{Pages: []Page{{
		Tables: []Table{{
			{"יום", "כניסה", "יציאה"},
			{"5", "07:00", "15:00"},
		}},
	}}}

	res := TableStrategy{}.Extract(doc, Period{})

	if assert.Len(t, res.Rows, 1) {
		assert.Equal(t, "5", res.Rows[0][domain.KeyDate])
	}
}

func TestTextStrategy_Extract(t *testing.T) {
	doc := Document{Pages: []Page{{
		Lines: []string{
			"דוח נוכחות ינואר 2026",
			"28/01/2026 07:00 15:30",
			"משרד ראשי 12 08:00 16:00 ישיבה",
			"אתר 5 09:00",
			"   ",
			"14 07:00 12:00 15:00 סהכ 8:00",
			"3 08:00 09:00 10:00",
		},
	}}}

	res := TextStrategy{Options: DefaultOptions()}.Extract(doc, Period{Month: 1, Year: 2026})

	assert.Equal(t, domain.ParserModePDFText, res.Mode)
	assert.Equal(t, []domain.RawRow{
		{domain.FieldDate: "28.01.2026", domain.FieldTimeIn: "07:00", domain.FieldTimeOut: "15:30", domain.FieldSite: "", domain.FieldNotes: ""},
		{domain.FieldDate: "12.01.2026", domain.FieldTimeIn: "08:00", domain.FieldTimeOut: "16:00", domain.FieldSite: "משרד ראשי", domain.FieldNotes: "ישיבה"},
	}, res.Rows)
	assert.Equal(t, []Issue{
		{Line: "אתר 5 09:00", Reason: ReasonTooFewTimes},
		{Line: "3 08:00 09:00 10:00", Reason: ReasonNoPair},
	}, res.Issues)
}

func TestTextStrategy_DayWithoutPeriod(t *testing.T) {
	doc := Document{Pages: []Page{{Lines: []string{"12 08:00 16:00"}}}}

	res := TextStrategy{}.Extract(doc, Period{Month: 1})

	assert.Empty(t, res.Rows)
	assert.Equal(t, []Issue{{Line: "12 08:00 16:00", Reason: ReasonNoDate}}, res.Issues)
}

func TestTextStrategy_ImpossibleDateNotReadAsDay(t *testing.T) {
	doc := Document{Pages: []Page{{Lines: []string{"30.02.2026 08:00 16:00"}}}}

	res := TextStrategy{Options: DefaultOptions()}.Extract(doc, Period{Month: 3, Year: 2026})

	assert.Empty(t, res.Rows)
	assert.Equal(t, []Issue{{Line: "30.02.2026 08:00 16:00", Reason: ReasonNoDate}}, res.Issues)
}

func TestPipeline_FallsBackToText(t *testing.T) {
	doc := Document{Pages: []Page{{
		Number: 1,
		Lines:  []string{"דוח נוכחות ינואר 2026", "28/01/2026 07:00 15:30"},
		Tables: []Table{{{"a", "b"}, {"c", "d"}}},
	}}}

	out, err := NewPipeline(DefaultOptions()).Run(doc)

	assert.NoError(t, err)
	assert.Len(t, out.Attempts, 2)
	assert.Equal(t, domain.ParserModePDFText, out.Document.Meta.ParserMode)
	assert.Equal(t, domain.SourceKindPDF, out.Document.Meta.SourceKind)
	assert.Equal(t, 1, out.Document.Meta.Month)
	assert.Equal(t, 2026, out.Document.Meta.Year)
	assert.Equal(t, 1, out.Document.Meta.Pages)
	assert.Equal(t, domain.CanonicalColumns, out.Document.Meta.Headers)
	assert.Empty(t, out.Document.Meta.Warnings)
	assert.Len(t, out.Document.Rows, 1)
}

func TestPipeline_TableCarriesFigures(t *testing.T) {
	doc := Document{Pages: []Page{{
		Lines: []string{"דוח נוכחות ינואר 2026", "שעות עבודה בפועל: 7:30", "נסיעות: 3"},
		Tables: []Table{{
			{"תאריך", "כניסה", "יציאה", "סהכ"},
			{"28/01/2026", "07:00", "14:30", "7:30"},
			{"", "", "", "7:30"},
		}},
	}}}

	out, err := NewPipeline(DefaultOptions()).Run(doc)

	assert.NoError(t, err)
	assert.Len(t, out.Attempts, 1)
	meta := out.Document.Meta
	assert.Equal(t, domain.ParserModePDFTable, meta.ParserMode)
	assert.Equal(t, "7:30", meta.MonthTotalHours)
	assert.Equal(t, "3.00", meta.Trips)
	assert.Equal(t, "7:30", meta.TotalRow)
}

func TestPipeline_NothingExtractable(t *testing.T) {
	doc := Document{Pages: []Page{{Lines: []string{"שלום"}}}}

	_, err := NewPipeline(DefaultOptions()).Run(doc)

	assert.True(t, errors.Is(err, domain.ErrNoExtractableRows))
	assert.Contains(t, err.Error(), "month/year not found")
}

func TestOptions_DisplayText(t *testing.T) {
	assert.Equal(t, "אתר ראשי", Options{StripBidi: true}.displayText("\u200fאתר  ראשי\u200e"))
	assert.Equal(t, "ישאר רתא", Options{StripBidi: true, ReverseHebrew: true}.displayText("אתר ראשי"))
	assert.Equal(t, "site B", Options{ReverseHebrew: true}.displayText("site B"))
}
