package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"hours-reconciliation/internal/timeparse"
)

// hebrewMonths is searched in order, so the first listed spelling wins.
var hebrewMonths = []struct {
	name   string
	number int
}{
	{"ינואר", 1},
	{"פברואר", 2},
	{"מרץ", 3},
	{"מארס", 3},
	{"אפריל", 4},
	{"מאי", 5},
	{"יוני", 6},
	{"יולי", 7},
	{"אוגוסט", 8},
	{"ספטמבר", 9},
	{"אוקטובר", 10},
	{"נובמבר", 11},
	{"דצמבר", 12},
}

var (
	yearLabelRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:שנה|הנש)\s*[:\-]?\s*(\d{2,4})`),
		regexp.MustCompile(`(\d{2,4})\s*[:\-]?\s*(?:שנה|הנש)`),
	}
	bareYearRe  = regexp.MustCompile(`\b(20\d{2})\b`)
	monthYearRe = regexp.MustCompile(`\b(1[0-2]|0?[1-9])[./](\d{2})\b`)

	reportDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:תאריך(?:\s*ה?דוח)?|ה?דוח\s*תאריך)\s*[:\-]?\s*(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})\s*[:\-]?\s*(?:חוד\s*ךיראת|ךיראת\s*חוד)`),
	}
	monthHoursRes = []*regexp.Regexp{
		regexp.MustCompile(`שעות\s*עבודה\s*בפועל\s*[:\-]?\s*(\d{1,3}:[0-5]\d)`),
		regexp.MustCompile(`(\d{1,3}:[0-5]\d)\s*[:\-]?\s*לעופב\s*הדובע\s*תועש`),
	}
	monthDaysRes = []*regexp.Regexp{
		regexp.MustCompile(`ימי\s*עבודה\s*בפועל\s*[:\-]?\s*(\d{1,2})`),
		regexp.MustCompile(`(\d{1,2})\s*[:\-]?\s*לעופב\s*הדובע\s*ימי`),
	}
	tripsRes = []*regexp.Regexp{
		regexp.MustCompile(`נסיעות\s*[:\-]?\s*(\d+(?:[.,]\d+)?)`),
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*[:\-]?\s*תועיסנ`),
	}
)

// InferPeriod finds the report month and year in free text. Month names are
// matched in logical and visual (reversed) order; a year needs a "year" label
// or a bare 20YY; a numeric MM/YY fills whatever is still missing.
func InferPeriod(text string) Period {
	lowered := strings.ToLower(timeparse.StripBidi(text))
	var p Period

	for _, m := range hebrewMonths {
		if strings.Contains(lowered, m.name) {
			p.Month, p.MonthName = m.number, m.name
			break
		}
	}
	if p.Month == 0 {
		for _, m := range hebrewMonths {
			if strings.Contains(lowered, reverse(m.name)) {
				p.Month, p.MonthName = m.number, m.name
				break
			}
		}
	}

	p.Year = labelledYear(lowered)
	if p.Year == 0 {
		if m := bareYearRe.FindStringSubmatch(lowered); m != nil {
			p.Year, _ = strconv.Atoi(m[1])
		}
	}

	if p.Month == 0 {
		if m := monthYearRe.FindStringSubmatch(lowered); m != nil {
			p.Month, _ = strconv.Atoi(m[1])
			if p.Year == 0 {
				yy, _ := strconv.Atoi(m[2])
				p.Year = 2000 + yy
			}
		}
	}
	return p
}

func labelledYear(text string) int {
	for _, re := range yearLabelRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if len(m[1]) != 4 {
				v += 2000
			}
			if v >= 2000 && v <= 2100 {
				return v
			}
		}
	}
	return 0
}

// Figures holds the report-level numbers printed on a portal PDF.
type Figures struct {
	ReportDate      string
	MonthTotalHours string
	MonthTotalDays  string
	Trips           string
}

// ExtractFigures reads the report date, monthly totals and trip allowance
// from document text. Absent figures stay empty.
func ExtractFigures(text string) Figures {
	clean := timeparse.StripBidi(text)
	var f Figures
	if v := firstGroup(clean, reportDateRes); v != "" {
		f.ReportDate = timeparse.NormalizeDate(v)
	}
	f.MonthTotalHours = firstGroup(clean, monthHoursRes)
	f.MonthTotalDays = firstGroup(clean, monthDaysRes)
	if v := firstGroup(clean, tripsRes); v != "" {
		f.Trips = normalizeAmount(v)
	}
	return f
}

func firstGroup(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// normalizeAmount renders a decimal-comma or decimal-point amount with two
// fractional digits, or returns it dot-separated when it does not parse.
func normalizeAmount(v string) string {
	dotted := strings.Replace(v, ",", ".", 1)
	d, err := decimal.NewFromString(dotted)
	if err != nil {
		return dotted
	}
	return d.StringFixed(2)
}
