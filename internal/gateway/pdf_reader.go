package gateway

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"hours-reconciliation/internal/extract"
	"hours-reconciliation/internal/timeparse"
)

const (
	rowTolerance    = 2.0
	defaultFontSize = 10.0
	wordGapFactor   = 0.2
	cellGapFactor   = 1.5
)

// PDFLayoutReader rebuilds lines and a table per page from glyph positions.
type PDFLayoutReader struct{}

// NewPDFLayoutReader creates a new reader instance.
func NewPDFLayoutReader() *PDFLayoutReader {
	return &PDFLayoutReader{}
}

// ReadLayout opens the PDF at path and lays out every non-empty page.
func (r *PDFLayoutReader) ReadLayout(ctx context.Context, path string) (doc extract.Document, err error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return doc, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	// The decoder panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to read PDF %s: %v", path, rec)
		}
	}()

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, layoutPage(i, p.Content().Text))
	}
	return doc, nil
}

type glyphRow struct {
	y      float64
	glyphs []pdf.Text
}

type cell struct {
	text       string
	start, end float64
}

func (c cell) centre() float64 { return (c.start + c.end) / 2 }

// layoutPage groups glyphs into visual rows (top to bottom), splits each row
// into cells on wide horizontal gaps, and aligns multi-cell rows into a table.
func layoutPage(number int, texts []pdf.Text) extract.Page {
	page := extract.Page{Number: number}

	var rows []glyphRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].glyphs = append(rows[i].glyphs, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, glyphRow{y: t.Y, glyphs: []pdf.Text{t}})
		}
	}
	// PDF space grows upwards.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	cellRows := make([][]cell, 0, len(rows))
	for _, row := range rows {
		cells := splitCells(row.glyphs)
		if len(cells) == 0 {
			continue
		}
		cellRows = append(cellRows, cells)
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c.text
		}
		page.Lines = append(page.Lines, strings.Join(parts, " "))
	}

	if table := alignTable(cellRows); len(table) > 0 {
		page.Tables = []extract.Table{table}
	}
	return page
}

func splitCells(glyphs []pdf.Text) []cell {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var cells []cell
	var b strings.Builder
	var cur cell
	flush := func() {
		if text := strings.TrimSpace(norm.NFC.String(b.String())); text != "" {
			cur.text = text
			cells = append(cells, cur)
		}
		b.Reset()
	}

	for i, g := range glyphs {
		size := g.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		if i > 0 {
			gap := g.X - cur.end
			switch {
			case gap > size*cellGapFactor:
				flush()
				cur = cell{start: g.X}
			case gap > size*wordGapFactor:
				b.WriteByte(' ')
			}
		} else {
			cur = cell{start: g.X}
		}
		b.WriteString(g.S)
		if end := g.X + g.W; end > cur.end {
			cur.end = end
		}
	}
	flush()
	return cells
}

// alignTable uses the widest row as the column template and drops every cell
// into the column with the nearest centre. The table starts at the first row
// with two or more cells; later single-cell rows only join when they carry a
// time (a totals line).
func alignTable(rows [][]cell) extract.Table {
	first, widest := -1, -1
	for i, r := range rows {
		if len(r) < 2 {
			continue
		}
		if first < 0 {
			first = i
		}
		if widest < 0 || len(r) > len(rows[widest]) {
			widest = i
		}
	}
	if first < 0 {
		return nil
	}

	template := rows[widest]
	var table extract.Table
	for _, r := range rows[first:] {
		if len(r) < 2 && len(timeparse.FindTimes(r[0].text)) == 0 {
			continue
		}
		out := make([]string, len(template))
		for _, c := range r {
			col := nearestColumn(template, c.centre())
			if out[col] != "" {
				out[col] += " "
			}
			out[col] += c.text
		}
		table = append(table, out)
	}
	return table
}

func nearestColumn(template []cell, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range template {
		if d := math.Abs(c.centre() - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
