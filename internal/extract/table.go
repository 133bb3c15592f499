package extract

import (
	"fmt"
	"strings"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// TableStrategy reads attendance from tables with a recognisable header row.
type TableStrategy struct {
	Options Options
}

func (s TableStrategy) Mode() domain.ParserMode { return domain.ParserModePDFTable }

func (s TableStrategy) Extract(doc Document, period Period) Result {
	res := Result{Mode: s.Mode()}
	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			s.extractTable(table, period, &res)
		}
	}
	return res
}

func (s TableStrategy) extractTable(table Table, period Period, res *Result) {
	rows := make([][]string, 0, len(table))
	for _, row := range table {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
		}
		rows = append(rows, cells)
	}
	if len(rows) < 2 {
		return
	}

	headerIdx, best := -1, 0
	for i, row := range rows {
		if hits := HeaderHits(row); hits > best {
			headerIdx, best = i, hits
		}
	}
	if headerIdx < 0 || best < 2 {
		res.issue("header_not_found", "no header row")
		return
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, cell := range rows[headerIdx] {
		if cell == "" {
			cell = fmt.Sprintf("COL_%d", i+1)
		}
		headers[i] = cell
	}
	if len(res.Headers) == 0 {
		res.Headers = headers
	}

	columns := make(map[string]int)
	for i, h := range headers {
		if key := ClassifyHeader(h); key != "" {
			if _, seen := columns[key]; !seen {
				columns[key] = i
			}
		}
	}
	cell := func(row []string, key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	totalIdx, hasTotal := columns[ColumnTotal]

	for _, row := range rows[headerIdx+1:] {
		if allEmpty(row) {
			continue
		}

		dateCell := cell(row, ColumnDate)
		if dateCell == "" {
			dateCell = cell(row, ColumnDay)
		}
		date := timeparse.BuildDate(dateCell, period.Month, period.Year)
		if date == "" {
			date = normalizeSpace(dateCell)
		}
		in := cellTime(cell(row, ColumnTimeIn))
		out := cellTime(cell(row, ColumnTimeOut))
		site := s.Options.displayText(cell(row, ColumnSite))
		notes := s.Options.displayText(cell(row, ColumnNotes))
		total := normalizeSpace(cell(row, ColumnTotal))

		if in == "" || out == "" {
			var candidates []string
			for i, c := range row {
				if hasTotal && i == totalIdx {
					continue
				}
				if t := cellTime(c); t != "" && !ignoredTimes[t] {
					candidates = append(candidates, t)
				}
			}
			if in == "" && len(candidates) > 0 {
				in = earliest(candidates)
			}
			if out == "" {
				out = latestOtherThan(candidates, in)
			}
		}

		regular := in != "" || out != "" || site != "" || notes != ""
		if !regular {
			if total != "" && res.TotalRow == "" {
				res.TotalRow = total
			}
			continue
		}
		res.Rows = append(res.Rows, canonicalRow(date, in, out, site, notes))
	}
}

// cellTime returns the first valid clock time in a table cell.
func cellTime(c string) string {
	if tokens := timeparse.FindTimes(c); len(tokens) > 0 {
		return tokens[0].Value
	}
	return ""
}

// HH:MM strings order chronologically as plain strings.
func earliest(times []string) string {
	first := times[0]
	for _, t := range times[1:] {
		if t < first {
			first = t
		}
	}
	return first
}

func latestOtherThan(times []string, exclude string) string {
	var last string
	for _, t := range times {
		if t != exclude && t > last {
			last = t
		}
	}
	return last
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
