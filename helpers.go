package overdose

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateFormats are tried in order when parsing the date column.
var DateFormats = []string{"2006-01-02", "1/2/2006", "01/02/2006", "20060102",
	"01/02/2006 03:04:05 PM", "1/2/2006 15:04", "Jan 2, 2006", "January 2, 2006"}

// *********** Coercions ***********

// toDate parses a raw date cell. ok is false when no format matches --
// the row is then treated as missing its date and dropped.
func toDate(d string, formats []string) (time.Time, bool) {
	d = strings.TrimSpace(strings.ReplaceAll(d, "'", ""))
	if d == "" {
		return time.Time{}, false
	}

	for _, fmtx := range formats {
		if dt, e := time.Parse(fmtx, d); e == nil {
			return dt, true
		}
	}

	return time.Time{}, false
}

// toAge coerces a raw age cell to a non-negative int. Float-valued text
// ("34.0") truncates; anything else is missing and drops the row.
func toAge(a string) (int, bool) {
	a = strings.TrimSpace(a)
	if a == "" {
		return 0, false
	}

	if i, e := strconv.Atoi(a); e == nil {
		return i, i >= 0
	}

	if f, e := strconv.ParseFloat(a, 64); e == nil {
		i := int(f)
		return i, i >= 0
	}

	return 0, false
}

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

func sortStrings(xs []string) {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
}
