// Package timeparse converts free-form date and time tokens found in attendance
// reports into the canonical HH:MM and DD.MM.YYYY forms.
//
// Every function here is total: unparseable input yields the zero value, never
// an error or a panic.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	DateLayout = "02.01.2006"
	maxMinutes = 24 * 60
)

var (
	timeRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	timeTokenRe = regexp.MustCompile(`\d+:\d+(?::\d+)?`)
	isoDateRe   = regexp.MustCompile(`(?:^|[^\d])(\d{4})-(\d{1,2})-(\d{1,2})(?:$|[^\d])`)
	dateRe      = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})[./-](\d{1,2})[./-](\d{4}|\d{2})(?:$|[^\d])`)
	dayRe       = regexp.MustCompile(`^\d{1,2}$`)
)

// StripBidi removes bidirectional control characters (LRM, RLM, embeddings,
// isolates) that PDF and spreadsheet exports scatter around RTL text.
func StripBidi(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Bidi_Control, r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeTime returns raw as HH:MM, or "" when it is not a valid clock time.
// Accepted shapes are H:MM, HH:MM and HH:MM:SS with optional surrounding space.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(StripBidi(raw))
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return formatClock(m[1], m[2])
}

func formatClock(hh, mm string) string {
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return ""
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Token is a valid time found inside a longer text.
type Token struct {
	Value string // normalized HH:MM
	Start int    // byte offset of the raw token
	End   int
}

// FindTimes returns every valid time-shaped token of text in order.
// Tokens such as "251:00" or "24:10" are skipped.
func FindTimes(text string) []Token {
	var out []Token
	for _, loc := range timeTokenRe.FindAllStringIndex(text, -1) {
		if v := NormalizeTime(text[loc[0]:loc[1]]); v != "" {
			out = append(out, Token{Value: v, Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// Minutes converts HH:MM into minutes after midnight.
func Minutes(hhmm string) (int, bool) {
	norm := NormalizeTime(hhmm)
	if norm == "" {
		return 0, false
	}
	h, _ := strconv.Atoi(norm[:2])
	m, _ := strconv.Atoi(norm[3:])
	return h*60 + m, true
}

// FormatSigned renders a minute delta as +H:MM or -H:MM.
func FormatSigned(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// NormalizeDate extracts the first date-shaped substring of raw, parses it
// day-first and returns it as DD.MM.YYYY. ISO YYYY-MM-DD is also understood.
// An impossible calendar date yields "" even when a later one would parse.
func NormalizeDate(raw string) string {
	s := StripBidi(raw)
	iso := isoDateRe.FindStringSubmatchIndex(s)
	dmy := dateRe.FindStringSubmatchIndex(s)
	switch {
	case iso != nil && (dmy == nil || iso[2] < dmy[2]):
		return composeDate(s[iso[6]:iso[7]], s[iso[4]:iso[5]], s[iso[2]:iso[3]])
	case dmy != nil:
		return composeDate(s[dmy[2]:dmy[3]], s[dmy[4]:dmy[5]], s[dmy[6]:dmy[7]])
	}
	return ""
}

// HasDateShape reports whether raw contains something written like a date,
// valid or not.
func HasDateShape(raw string) bool {
	s := StripBidi(raw)
	return isoDateRe.MatchString(s) || dateRe.MatchString(s)
}

func composeDate(dd, mm, yy string) string {
	day, err := strconv.Atoi(dd)
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(mm)
	if err != nil {
		return ""
	}
	year, err := strconv.Atoi(yy)
	if err != nil {
		return ""
	}
	if len(yy) == 2 {
		year += 2000
	}
	return FormatDate(day, month, year)
}

// FormatDate returns DD.MM.YYYY for a real calendar date, "" otherwise.
func FormatDate(day, month, year int) string {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return ""
	}
	return t.Format(DateLayout)
}

// ReadsAsDay reports whether cell is a bare day-of-month number.
func ReadsAsDay(cell string) (int, bool) {
	s := strings.TrimSpace(StripBidi(cell))
	if !dayRe.MatchString(s) {
		return 0, false
	}
	day, _ := strconv.Atoi(s)
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// BuildDate resolves cell into DD.MM.YYYY. A full date in the cell wins; a bare
// day number is combined with month and year when both are known (non-zero).
func BuildDate(cell string, month, year int) string {
	if full := NormalizeDate(cell); full != "" {
		return full
	}
	day, ok := ReadsAsDay(cell)
	if !ok || month == 0 || year == 0 {
		return ""
	}
	return FormatDate(day, month, year)
}

// ParseDate parses a canonical DD.MM.YYYY string.
func ParseDate(ddmmyyyy string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, ddmmyyyy)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateKey returns YYYYMMDD for a canonical date so that keys sort chronologically.
func DateKey(ddmmyyyy string) (int, bool) {
	t, ok := ParseDate(ddmmyyyy)
	if !ok {
		return 0, false
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day(), true
}

// DateVariants lists the equivalent spellings a ledger may use for a date.
func DateVariants(ddmmyyyy string) []string {
	t, ok := ParseDate(ddmmyyyy)
	if !ok {
		if ddmmyyyy == "" {
			return nil
		}
		return []string{ddmmyyyy}
	}
	candidates := []string{
		t.Format("02.01.2006"),
		t.Format("02/01/2006"),
		t.Format("2.1.2006"),
		t.Format("2/1/2006"),
	}
	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ExcelSerialTime renders the time-of-day part of a spreadsheet serial as HH:MM.
func ExcelSerialTime(serial float64) string {
	if serial < 0 {
		return ""
	}
	frac := serial - math.Floor(serial)
	total := int(math.Round(frac * maxMinutes))
	if total == maxMinutes {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
