package agg

import (
	o "github.com/invertedv/overdose"
)

// Result bundles everything one interaction needs: the filtered view, the
// scalar summaries and the four chart aggregates. HasData is false when
// the selection matched nothing; AverageAge is meaningless in that case.
type Result struct {
	Selection Selection `json:"selection"`
	View      *View     `json:"-"`

	TotalCount int  `json:"totalCount"`
	AverageAge int  `json:"averageAge"`
	HasData    bool `json:"hasData"`

	OverTime    []YearCount      `json:"overTime"`
	ByCounty    []CountyCount    `json:"byCounty"`
	Substances  []SubstanceCount `json:"substances"`
	AgeByGender []GenderHist     `json:"ageByGender"`
}

// Run recomputes the whole dashboard state from scratch: one filtered view
// plus every aggregate, atomically, with no shared mutable state. Cheap
// enough to call on every selection change.
func Run(tbl *o.Table, sel Selection) *Result {
	v := Apply(tbl, sel)

	res := &Result{
		Selection:   sel,
		View:        v,
		TotalCount:  v.TotalCount(),
		OverTime:    v.DeathsOverTime(),
		ByCounty:    v.DeathsByCounty(),
		Substances:  v.SubstanceFrequency(),
		AgeByGender: v.AgeDistribution(),
	}

	if avg, e := v.AverageAge(); e == nil {
		res.AverageAge, res.HasData = avg, true
	}

	return res
}
