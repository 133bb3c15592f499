// Package extract turns the text and table layout of a portal PDF into raw
// attendance rows. It knows nothing about files: the gateway hands it pages
// already laid out as lines and tables.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// Table is a rectangular grid of cell strings in visual row order.
type Table [][]string

// Page is one laid-out PDF page.
type Page struct {
	Number int
	Lines  []string
	Tables []Table
}

// Document is the laid-out content of a whole PDF.
type Document struct {
	Pages []Page
}

// Text joins every page's lines, page after page.
func (d Document) Text() string {
	var b strings.Builder
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Issue is a row-level defect: the line was skipped, the parse went on.
type Issue struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// Period is the month/year context inferred from the document; zero values mean unknown.
type Period struct {
	Month     int
	Year      int
	MonthName string
}

// Known reports whether both month and year are present.
func (p Period) Known() bool { return p.Month != 0 && p.Year != 0 }

// Options tune how free text (site, notes) is cleaned for display.
type Options struct {
	StripBidi     bool
	ReverseHebrew bool
}

// DefaultOptions strips bidi controls and leaves text direction alone.
func DefaultOptions() Options {
	return Options{StripBidi: true}
}

// Result is what a single strategy produced, including its accumulated defects.
type Result struct {
	Mode     domain.ParserMode
	Rows     []domain.RawRow
	Issues   []Issue
	Headers  []string
	TotalRow string
}

func (r *Result) issue(line, reason string) {
	r.Issues = append(r.Issues, Issue{Line: line, Reason: reason})
}

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	latinRe  = regexp.MustCompile(`[A-Za-z]`)
	hebrewRe = regexp.MustCompile(`[\x{0590}-\x{05FF}]`)
)

// normalizeSpace strips bidi controls and soft hyphens and collapses whitespace.
func normalizeSpace(s string) string {
	s = timeparse.StripBidi(s)
	s = strings.ReplaceAll(s, "\u00ad", " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func (o Options) displayText(s string) string {
	if o.StripBidi {
		s = timeparse.StripBidi(s)
	}
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	if o.ReverseHebrew && hebrewRe.MatchString(s) && !latinRe.MatchString(s) {
		s = reverse(s)
	}
	return s
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// containsEither reports whether token appears in s as written or reversed.
func containsEither(s, token string) bool {
	return strings.Contains(s, token) || strings.Contains(s, reverse(token))
}

func stripQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '״', '׳':
			return -1
		}
		if unicode.Is(unicode.Bidi_Control, r) {
			return -1
		}
		return r
	}, s)
}

func canonicalRow(date, in, out, site, notes string) domain.RawRow {
	return domain.RawRow{
		domain.KeyDate:    date,
		domain.KeyTimeIn:  in,
		domain.KeyTimeOut: out,
		domain.KeySite:    site,
		domain.KeyNotes:   notes,
	}
}
