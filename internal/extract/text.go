package extract

import (
	"regexp"
	"strconv"
	"strings"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// serviceTokens mark header, footer and summary lines that never hold a day.
var serviceTokens = []string{
	"סה\"כ", "סה״כ", "סהכ", "סיכום", "חתימה", "דו\"ח", "דוח",
	"שם", "עובד", "טווח", "חודש", "שנה", "תאריך",
}

var dayNumberRe = regexp.MustCompile(`\b([0-2]?\d|3[01])\b`)

// Issue reasons reported by TextStrategy.
const (
	ReasonTooFewTimes = "fewer than two times"
	ReasonNoDate      = "no date and no month context"
	ReasonNoPair      = "no plausible time pair"
)

// TextStrategy reads one attendance row per text line. It is the fallback
// for reports whose table layout cannot be recovered.
type TextStrategy struct {
	Options Options
}

func (s TextStrategy) Mode() domain.ParserMode { return domain.ParserModePDFText }

func (s TextStrategy) Extract(doc Document, period Period) Result {
	res := Result{Mode: s.Mode(), Headers: domain.CanonicalColumns}
	for _, page := range doc.Pages {
		for _, raw := range page.Lines {
			line := normalizeSpace(raw)
			if isServiceLine(line) {
				continue
			}
			if row, reason := s.parseLine(line, period); reason != "" {
				res.issue(line, reason)
			} else {
				res.Rows = append(res.Rows, row)
			}
		}
	}
	return res
}

func (s TextStrategy) parseLine(line string, period Period) (domain.RawRow, string) {
	tokens := timeparse.FindTimes(line)
	if len(tokens) < 2 {
		return nil, ReasonTooFewTimes
	}
	times := make([]string, len(tokens))
	for i, t := range tokens {
		times[i] = t.Value
	}

	date := timeparse.NormalizeDate(line)
	dated := date != ""
	dayStart := -1
	if !dated {
		if timeparse.HasDateShape(line) {
			return nil, ReasonNoDate
		}
		day, start, ok := findDay(line, tokens)
		if !ok || !period.Known() {
			return nil, ReasonNoDate
		}
		date = timeparse.FormatDate(day, period.Month, period.Year)
		if date == "" {
			return nil, ReasonNoDate
		}
		dayStart = start
	}

	in, out, ok := SelectTimePair(times)
	if !ok {
		return nil, ReasonNoPair
	}

	var site, notes string
	if !dated {
		site = s.Options.displayText(strings.Trim(line[:dayStart], " -|"))
		tail := strings.TrimSpace(line[tokens[1].End:])
		if tail != "" && !hasTotalToken(tail) {
			notes = s.Options.displayText(tail)
		}
	}

	return domain.RawRow{
		domain.FieldDate:    date,
		domain.FieldTimeIn:  in,
		domain.FieldTimeOut: out,
		domain.FieldSite:    site,
		domain.FieldNotes:   notes,
	}, ""
}

// findDay locates a bare day-of-month number outside the time tokens and
// returns it with its byte offset in line.
func findDay(line string, times []timeparse.Token) (int, int, bool) {
	masked := []byte(line)
	for _, t := range times {
		for i := t.Start; i < t.End; i++ {
			masked[i] = ' '
		}
	}
	for _, loc := range dayNumberRe.FindAllSubmatchIndex(masked, -1) {
		day, _ := strconv.Atoi(string(masked[loc[2]:loc[3]]))
		if day >= 1 && day <= 31 {
			return day, loc[2], true
		}
	}
	return 0, 0, false
}

func isServiceLine(line string) bool {
	lowered := strings.ToLower(line)
	if strings.TrimSpace(lowered) == "" {
		return true
	}
	for _, tok := range serviceTokens {
		if strings.Contains(lowered, tok) {
			return true
		}
		if len([]rune(tok)) >= 3 && strings.Contains(lowered, reverse(tok)) {
			return true
		}
	}
	return false
}
