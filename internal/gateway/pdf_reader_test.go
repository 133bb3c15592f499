package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/extract"
)

func glyph(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: 10}
}

func TestLayoutPage(t *testing.T) {
	texts := []pdf.Text{
		glyph("חתימה", 50, 650, 30),
		glyph("15:30", 255, 699.5, 22),
		glyph("ינואר", 200, 760, 30),
		glyph("2026", 240, 760, 20),
		glyph("תאריך", 50, 720, 30),
		glyph("כניסה", 150, 720, 30),
		glyph("יציאה", 250, 720, 30),
		glyph("28/01/2026", 45, 700.5, 45),
		glyph("0", 155, 700, 4),
		glyph("7", 159, 700, 4),
		glyph(":", 163, 700, 2),
		glyph("0", 165, 700, 4),
		glyph("0", 169, 700, 4),
		glyph(" ", 173, 700, 3),
		glyph("251:00", 255, 680, 28),
	}

	page := layoutPage(1, texts)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, []string{
		"ינואר 2026",
		"תאריך כניסה יציאה",
		"28/01/2026 07:00 15:30",
		"251:00",
		"חתימה",
	}, page.Lines)
	assert.Equal(t, []extract.Table{{
		{"תאריך", "כניסה", "יציאה"},
		{"28/01/2026", "07:00", "15:30"},
		{"", "", "251:00"},
	}}, page.Tables)
}

func TestLayoutPage_NoTable(t *testing.T) {
	page := layoutPage(2, []pdf.Text{
		glyph("28/01/2026", 45, 700, 45),
		glyph("07:00", 95, 700, 22),
		glyph("15:30", 122, 700, 22),
	})

	assert.Equal(t, []string{"28/01/2026 07:00 15:30"}, page.Lines)
	assert.Empty(t, page.Tables)
}

func TestPDFLayoutReader_FileNotFound(t *testing.T) {
	_, err := NewPDFLayoutReader().ReadLayout(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
