package agg

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ChartSubstances is the fixed subset of indicators shown in the substance
// chart. Amphet, Tramad and Morphine_NotHeroin are prepared but deliberately
// left off the chart.
var ChartSubstances = []string{"Heroin", "Cocaine", "Fentanyl", "Oxycodone",
	"Oxymorphone", "Ethanol", "Hydrocodone", "Benzodiazepine", "Methadone"}

// AgeBins is the number of histogram bins in the age distribution.
const AgeBins = 30

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type CountyCount struct {
	County string `json:"county"`
	Count  int    `json:"count"`
}

type SubstanceCount struct {
	Substance string `json:"substance"`
	Count     int    `json:"count"`
}

// GenderHist is one gender's binned age counts. Edges has one more entry
// than Counts; bin i covers [Edges[i], Edges[i+1]).
type GenderHist struct {
	Gender string    `json:"gender"`
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// DeathsOverTime counts records per year, ascending by year. Years with no
// surviving records are absent, not zero-filled.
func (v *View) DeathsOverTime() []YearCount {
	byYear := make(map[int]int)
	for _, r := range v.recs {
		byYear[r.Year]++
	}

	var out []YearCount
	for yr, n := range byYear {
		out = append(out, YearCount{Year: yr, Count: n})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}

// DeathsByCounty counts records per county, ascending by count so the
// largest bar renders last. Ties break on county name for determinism.
func (v *View) DeathsByCounty() []CountyCount {
	byCounty := make(map[string]int)
	for _, r := range v.recs {
		byCounty[r.DeathCounty]++
	}

	var out []CountyCount
	for cty, n := range byCounty {
		out = append(out, CountyCount{County: cty, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}

		return out[i].County < out[j].County
	})

	return out
}

// SubstanceFrequency counts true indicators over ChartSubstances only,
// ascending by count. An empty view yields an empty sequence.
func (v *View) SubstanceFrequency() []SubstanceCount {
	if len(v.recs) == 0 {
		return nil
	}

	out := make([]SubstanceCount, 0, len(ChartSubstances))
	for _, nm := range ChartSubstances {
		out = append(out, SubstanceCount{Substance: nm, Count: v.IndicatorCount(nm)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}

		return out[i].Substance < out[j].Substance
	})

	return out
}

// AgeDistribution bins the view's ages per gender. The bin edges come from
// the age bounds of the whole table, not the view, so the axis is stable
// as filters change.
func (v *View) AgeDistribution() []GenderHist {
	var genders []string
	byGender := make(map[string][]float64)
	for _, r := range v.recs {
		if _, ok := byGender[r.Sex]; !ok {
			genders = append(genders, r.Sex)
		}

		byGender[r.Sex] = append(byGender[r.Sex], float64(r.Age))
	}

	sort.Strings(genders)

	lo, hi := v.tbl.AgeBounds()
	// upper edge one past the max so the top age lands inside the last bin
	edges := floats.Span(make([]float64, AgeBins+1), float64(lo), float64(hi)+1)

	var out []GenderHist
	for _, g := range genders {
		ages := byGender[g]
		sort.Float64s(ages)

		binned := stat.Histogram(make([]float64, AgeBins), edges, ages, nil)

		counts := make([]int, len(binned))
		for ind := 0; ind < len(binned); ind++ {
			counts[ind] = int(binned[ind])
		}

		out = append(out, GenderHist{Gender: g, Edges: edges, Counts: counts})
	}

	return out
}
