package extract

import (
	"sort"

	"hours-reconciliation/internal/timeparse"
)

// Placeholder times the portal prints for days without a real punch.
var ignoredTimes = map[string]bool{"00:00": true, "00:01": true}

const (
	minShiftMinutes     = 3 * 60
	maxShiftMinutes     = 16 * 60
	typicalShiftMinutes = 8 * 60
)

// SelectTimePair picks the entry/exit pair out of the times found on one line.
// Placeholders are dropped first. Two times are returned in clock order. With
// more, the pair whose duration lies within 3..16 hours and is closest to
// 8 hours wins; the earliest such pair breaks ties.
func SelectTimePair(times []string) (in, out string, ok bool) {
	type clock struct {
		value   string
		minutes int
	}

	var clean []clock
	for _, t := range times {
		if ignoredTimes[t] {
			continue
		}
		m, valid := timeparse.Minutes(t)
		if !valid {
			continue
		}
		clean = append(clean, clock{value: t, minutes: m})
	}
	if len(clean) < 2 {
		return "", "", false
	}
	if len(clean) == 2 {
		a, b := clean[0], clean[1]
		if a.minutes <= b.minutes {
			return a.value, b.value, true
		}
		return b.value, a.value, true
	}

	sort.SliceStable(clean, func(i, j int) bool { return clean[i].minutes < clean[j].minutes })

	type candidate struct {
		score   int
		in, out string
	}
	var candidates []candidate
	for i := range clean {
		for j := i + 1; j < len(clean); j++ {
			d := clean[j].minutes - clean[i].minutes
			if d <= 0 || d < minShiftMinutes || d > maxShiftMinutes {
				continue
			}
			candidates = append(candidates, candidate{score: abs(d - typicalShiftMinutes), in: clean[i].value, out: clean[j].value})
		}
	}
	if len(candidates) == 0 {
		return "", "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score < candidates[j].score })
	return candidates[0].in, candidates[0].out, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
