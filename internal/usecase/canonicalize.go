package usecase

import (
	"fmt"
	"sort"
	"strings"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// noTime sorts entries without an entry time after every real time of day.
const noTime = 24 * 60

var fieldKeys = map[string]string{
	domain.FieldDate:    domain.KeyDate,
	domain.FieldTimeIn:  domain.KeyTimeIn,
	domain.FieldTimeOut: domain.KeyTimeOut,
	domain.FieldSite:    domain.KeySite,
	domain.FieldNotes:   domain.KeyNotes,
}

// Canonicalize turns raw rows into CanonicalEntries sorted by date and entry
// time. Row defects are appended to doc.Meta.Warnings; only a document with
// no usable row at all is an error.
func Canonicalize(doc *domain.RawDocument) ([]domain.CanonicalEntry, error) {
	meta := &doc.Meta
	entries := make([]domain.CanonicalEntry, 0, len(doc.Rows))

	for _, row := range doc.Rows {
		rawDate := field(row, domain.FieldDate)
		e := domain.CanonicalEntry{
			TimeIn:  timeparse.NormalizeTime(field(row, domain.FieldTimeIn)),
			TimeOut: timeparse.NormalizeTime(field(row, domain.FieldTimeOut)),
			Site:    field(row, domain.FieldSite),
			Notes:   field(row, domain.FieldNotes),
		}
		e.Date = resolveDate(rawDate, meta)

		if e.IsEmpty() && rawDate == "" {
			continue
		}
		if e.Date == "" {
			if rawDate != "" {
				meta.Warnings.Add(fmt.Sprintf("unparsed date: %s", rawDate))
			} else {
				meta.Warnings.Add("empty date")
			}
			meta.Warnings.Add("missing date in row, skipped")
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", meta.SourcePath, domain.ErrNoValidRows)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ki, _ := timeparse.DateKey(entries[i].Date)
		kj, _ := timeparse.DateKey(entries[j].Date)
		if ki != kj {
			return ki < kj
		}
		return entryMinutes(entries[i]) < entryMinutes(entries[j])
	})
	return entries, nil
}

// field looks a value up under the Hebrew name, its visually reversed form,
// then the English key.
func field(row domain.RawRow, name string) string {
	for _, key := range []string{name, reverseRunes(name), fieldKeys[name]} {
		if v, ok := row[key]; ok {
			return strings.TrimSpace(timeparse.StripBidi(v))
		}
	}
	return ""
}

func resolveDate(raw string, meta *domain.DocumentMeta) string {
	if raw == "" {
		return ""
	}
	if meta.HasPeriod() {
		return timeparse.BuildDate(raw, meta.Month, meta.Year)
	}
	return timeparse.NormalizeDate(raw)
}

func entryMinutes(e domain.CanonicalEntry) int {
	if m, ok := timeparse.Minutes(e.TimeIn); ok {
		return m
	}
	return noTime
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
