package overdose

import (
	"time"
)

// Record is one complete death entry. Records missing any of the required
// fields (date, age, sex, race, county) never survive Load.
type Record struct {
	Date        time.Time `json:"date"`
	Year        int       `json:"year"`
	Age         int       `json:"age"`
	Sex         string    `json:"sex"`
	Race        string    `json:"race"`
	DeathCounty string    `json:"deathCounty"`

	// Substances has one entry per indicator column present in the source
	// schema. A value is true iff the raw cell was exactly "Y"; anything
	// else, including garbage, maps to false.
	Substances map[string]bool `json:"substances"`
}

// Table is the prepared, immutable collection of complete Records.
// Filtering always derives a new view; nothing mutates a Table in place.
type Table struct {
	recs       []*Record
	indicators []string

	counties []string
	genders  []string

	minAge, maxAge int
}

func newTable(recs []*Record, indicators []string) *Table {
	t := &Table{recs: recs, indicators: indicators}

	var counties, genders []string
	for ind := 0; ind < len(recs); ind++ {
		r := recs[ind]
		if !has(r.DeathCounty, counties) {
			counties = append(counties, r.DeathCounty)
		}

		if !has(r.Sex, genders) {
			genders = append(genders, r.Sex)
		}

		if ind == 0 || r.Age < t.minAge {
			t.minAge = r.Age
		}

		if r.Age > t.maxAge {
			t.maxAge = r.Age
		}
	}

	sortStrings(counties)
	sortStrings(genders)
	t.counties, t.genders = counties, genders

	return t
}

func (t *Table) RowCount() int {
	return len(t.recs)
}

// Records returns the underlying records. The slice is shared, not copied;
// callers must treat it as read-only.
func (t *Table) Records() []*Record {
	return t.recs
}

// Indicators lists the indicator columns that were present in the source,
// in schema order.
func (t *Table) Indicators() []string {
	return t.indicators
}

// Counties returns the distinct counties, sorted, for selector enumeration.
func (t *Table) Counties() []string {
	return t.counties
}

// Genders returns the distinct sex values, sorted.
func (t *Table) Genders() []string {
	return t.genders
}

// AgeBounds returns the observed min and max age over the whole table.
// These bound the age-range selector and fix the histogram bin edges.
func (t *Table) AgeBounds() (minAge, maxAge int) {
	return t.minAge, t.maxAge
}
