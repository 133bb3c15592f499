package extract

import (
	"fmt"

	"hours-reconciliation/internal/domain"
)

// Strategy is one way of reading rows out of a laid-out document.
type Strategy interface {
	Mode() domain.ParserMode
	Extract(doc Document, period Period) Result
}

// Pipeline tries its strategies in order; the first one yielding rows wins.
type Pipeline struct {
	Strategies []Strategy
}

// NewPipeline returns the table strategy followed by the line strategy.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{Strategies: []Strategy{
		TableStrategy{Options: opts},
		TextStrategy{Options: opts},
	}}
}

// Outcome is what Run produced: the document plus every attempt made, which
// callers log when diagnosing a parse.
type Outcome struct {
	Document domain.RawDocument
	Period   Period
	Attempts []Result
}

// Run extracts a RawDocument from doc. It fails with domain.ErrNoExtractableRows
// when no strategy yields a single row.
func (p *Pipeline) Run(doc Document) (*Outcome, error) {
	text := doc.Text()
	period := InferPeriod(text)

	meta := domain.DocumentMeta{
		SourceKind: domain.SourceKindPDF,
		Month:      period.Month,
		Year:       period.Year,
		MonthName:  period.MonthName,
		Pages:      len(doc.Pages),
	}
	if !period.Known() {
		meta.Warnings.Add("month/year not found in PDF text")
	}

	out := &Outcome{Period: period}
	for _, s := range p.Strategies {
		res := s.Extract(doc, period)
		out.Attempts = append(out.Attempts, res)
		if len(res.Rows) == 0 {
			continue
		}

		meta.ParserMode = res.Mode
		meta.Headers = res.Headers
		if res.Mode == domain.ParserModePDFTable {
			figures := ExtractFigures(text)
			meta.ReportDate = figures.ReportDate
			meta.MonthTotalHours = figures.MonthTotalHours
			meta.MonthTotalDays = figures.MonthTotalDays
			meta.Trips = figures.Trips
			meta.TotalRow = res.TotalRow
		}
		out.Document = domain.RawDocument{Meta: meta, Rows: res.Rows}
		return out, nil
	}

	if !period.Known() {
		return out, fmt.Errorf("%w: month/year not found in PDF text", domain.ErrNoExtractableRows)
	}
	return out, domain.ErrNoExtractableRows
}
