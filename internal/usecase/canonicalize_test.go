package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/usecase"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name         string
		meta         domain.DocumentMeta
		rows         []domain.RawRow
		want         []domain.CanonicalEntry
		wantWarnings domain.Warnings
	}{
		{
			name: "hebrew keys, sorted by date then entry time",
			rows: []domain.RawRow{
				{"תאריך": "29/01/2026", "כניסה": "8:05", "יציאה": "16:00:00", "אתר": " משרד ", "הערות": ""},
				{"תאריך": "28.01.2026", "כניסה": "17:00", "יציאה": "19:00"},
				{"תאריך": "28.01.26", "כניסה": "07:00", "יציאה": "12:00"},
			},
			want: []domain.CanonicalEntry{
				{Date: "28.01.2026", TimeIn: "07:00", TimeOut: "12:00"},
				{Date: "28.01.2026", TimeIn: "17:00", TimeOut: "19:00"},
				{Date: "29.01.2026", TimeIn: "08:05", TimeOut: "16:00", Site: "משרד"},
			},
		},
		{
			name: "english keys and entries without time last",
			rows: []domain.RawRow{
				{"date": "03.02.2026", "notes": "חופשה"},
				{"date": "03.02.2026", "time_in": "09:00", "time_out": "15:00", "site": "אתר 1"},
			},
			want: []domain.CanonicalEntry{
				{Date: "03.02.2026", TimeIn: "09:00", TimeOut: "15:00", Site: "אתר 1"},
				{Date: "03.02.2026", Notes: "חופשה"},
			},
		},
		{
			name: "reversed hebrew keys",
			rows: []domain.RawRow{{"ךיראת": "01.03.2026", "הסינכ": "07:00", "האיצי": "15:00"}},
			want: []domain.CanonicalEntry{{Date: "01.03.2026", TimeIn: "07:00", TimeOut: "15:00"}},
		},
		{
			name: "bare day number combined with document period",
			meta: domain.DocumentMeta{Month: 1, Year: 2026},
			rows: []domain.RawRow{{"תאריך": "5", "כניסה": "07:00", "יציאה": "15:00"}},
			want: []domain.CanonicalEntry{{Date: "05.01.2026", TimeIn: "07:00", TimeOut: "15:00"}},
		},
		{
			name: "defective rows warn and are skipped, empty rows dropped silently",
			rows: []domain.RawRow{
				{"תאריך": "", "כניסה": "", "יציאה": ""},
				{"תאריך": "יום א", "כניסה": "07:00", "יציאה": "15:00"},
				{"תאריך": "", "כניסה": "07:00", "יציאה": "15:00"},
				{"תאריך": "", "כניסה": "08:00", "יציאה": "16:00"},
				{"תאריך": "02.01.2026", "כניסה": "25:00", "יציאה": "15:00"},
			},
			want: []domain.CanonicalEntry{{Date: "02.01.2026", TimeOut: "15:00"}},
			wantWarnings: domain.Warnings{
				"unparsed date: יום א",
				"missing date in row, skipped",
				"empty date",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &domain.RawDocument{Meta: tt.meta, Rows: tt.rows}

			got, err := usecase.Canonicalize(doc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWarnings, doc.Meta.Warnings)
		})
	}
}

func TestCanonicalize_NoValidRows(t *testing.T) {
	doc := &domain.RawDocument{
		Meta: domain.DocumentMeta{SourcePath: "export.csv"},
		Rows: []domain.RawRow{{"תאריך": "סה\"כ", "כניסה": "07:00"}},
	}

	got, err := usecase.Canonicalize(doc)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrNoValidRows))
	assert.Contains(t, doc.Meta.Warnings, "unparsed date: סה\"כ")
}
