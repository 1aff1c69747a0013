// Package agg derives filtered views and aggregates from a prepared table.
// Everything here is a pure function of (table, selection): nothing caches,
// nothing mutates the source, and recomputing is always safe.
package agg

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	o "github.com/invertedv/overdose"
)

// All is the pass-through value for the county and gender filters.
const All = "All"

// ErrNoData is returned by reductions that are undefined on an empty view,
// e.g. the average age. Callers surface it as "no data", not as a failure.
var ErrNoData = errors.New("no data")

// Selection is the transient filter state: a county (or All), an inclusive
// age range, and a gender (or All).
type Selection struct {
	County string `json:"county"`
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"`
	Gender string `json:"gender"`
}

// NewSelection returns the pass-through selection for tbl: every county,
// the full observed age range, every gender.
func NewSelection(tbl *o.Table) Selection {
	minAge, maxAge := tbl.AgeBounds()

	return Selection{County: All, MinAge: minAge, MaxAge: maxAge, Gender: All}
}

// View is the subset of a table matching one selection. It shares the
// table's records by reference and is rebuilt fresh on every selection
// change.
type View struct {
	recs []*o.Record
	tbl  *o.Table
}

// Apply filters tbl by sel, preserving record order.
func Apply(tbl *o.Table, sel Selection) *View {
	var recs []*o.Record

	for _, r := range tbl.Records() {
		if r.Age < sel.MinAge || r.Age > sel.MaxAge {
			continue
		}

		if sel.County != All && r.DeathCounty != sel.County {
			continue
		}

		if sel.Gender != All && r.Sex != sel.Gender {
			continue
		}

		recs = append(recs, r)
	}

	return &View{recs: recs, tbl: tbl}
}

// Records returns the surviving records, in source order. Read-only.
func (v *View) Records() []*o.Record {
	return v.recs
}

// Table returns the table the view was derived from.
func (v *View) Table() *o.Table {
	return v.tbl
}

// *********** Scalar summaries ***********

func (v *View) TotalCount() int {
	return len(v.recs)
}

// AverageAge is the arithmetic mean age truncated to an integer.
// The mean of an empty view is undefined; that surfaces as ErrNoData.
func (v *View) AverageAge() (int, error) {
	if len(v.recs) == 0 {
		return 0, ErrNoData
	}

	ages := make([]float64, len(v.recs))
	for ind := 0; ind < len(v.recs); ind++ {
		ages[ind] = float64(v.recs[ind].Age)
	}

	return int(stat.Mean(ages, nil)), nil
}

// IndicatorCount counts records where the named indicator is true.
// Indicators absent from the source count zero.
func (v *View) IndicatorCount(name string) int {
	n := 0
	for _, r := range v.recs {
		if r.Substances[name] {
			n++
		}
	}

	return n
}
