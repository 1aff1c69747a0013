package plot

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"github.com/invertedv/overdose/agg"
)

// The four dashboard figures. Each takes an aggregate straight from agg
// and returns a ready figure; an empty aggregate produces an empty figure,
// which plotly renders as "no data".

// TimeSeries is the deaths-over-time line chart.
func TimeSeries(yc []agg.YearCount, opt ...Opt) *Plot {
	p := NewPlot(append([]Opt{WithTitle("Deaths Over Time"),
		WithXlabel("Year"), WithYlabel("Number of Deaths")}, opt...)...)

	if len(yc) == 0 {
		return p
	}

	x := make([]float64, len(yc))
	y := make([]float64, len(yc))
	for ind := 0; ind < len(yc); ind++ {
		x[ind] = float64(yc[ind].Year)
		y[ind] = float64(yc[ind].Count)
	}

	tr := &grob.Scatter{X: x, Y: y,
		Mode: grob.ScatterModeLines + "+" + grob.ScatterModeMarkers}
	p.Fig.AddTraces(tr)

	return p
}

// ByCounty is the horizontal deaths-by-county bar chart. The input is
// sorted ascending by count, so the largest county lands on top.
func ByCounty(cc []agg.CountyCount, opt ...Opt) *Plot {
	p := NewPlot(append([]Opt{WithTitle("Deaths by County"),
		WithXlabel("Number of Deaths"), WithYlabel("County")}, opt...)...)

	if len(cc) == 0 {
		return p
	}

	x := make([]float64, len(cc))
	y := make([]string, len(cc))
	for ind := 0; ind < len(cc); ind++ {
		x[ind] = float64(cc[ind].Count)
		y[ind] = cc[ind].County
	}

	tr := &grob.Bar{X: x, Y: y, Orientation: grob.BarOrientationH}
	p.Fig.AddTraces(tr)

	return p
}

// Substances is the horizontal substance-frequency bar chart.
func Substances(sc []agg.SubstanceCount, opt ...Opt) *Plot {
	p := NewPlot(append([]Opt{WithTitle("Most Common Substances Involved"),
		WithXlabel("Number of Cases"), WithYlabel("Substance")}, opt...)...)

	if len(sc) == 0 {
		return p
	}

	x := make([]float64, len(sc))
	y := make([]string, len(sc))
	for ind := 0; ind < len(sc); ind++ {
		x[ind] = float64(sc[ind].Count)
		y[ind] = sc[ind].Substance
	}

	tr := &grob.Bar{X: x, Y: y, Orientation: grob.BarOrientationH}
	p.Fig.AddTraces(tr)

	return p
}

// AgeHistogram is the age-by-gender histogram: one bar trace per gender,
// bars placed at bin centers.
func AgeHistogram(hs []agg.GenderHist, opt ...Opt) *Plot {
	p := NewPlot(append([]Opt{WithTitle("Age Distribution by Gender"),
		WithXlabel("Age"), WithYlabel("Count"), WithLegend(true)}, opt...)...)

	for _, h := range hs {
		x := make([]float64, len(h.Counts))
		y := make([]float64, len(h.Counts))
		for ind := 0; ind < len(h.Counts); ind++ {
			x[ind] = (h.Edges[ind] + h.Edges[ind+1]) / 2
			y[ind] = float64(h.Counts[ind])
		}

		p.Fig.AddTraces(&grob.Bar{Name: h.Gender, X: x, Y: y})
	}

	return p
}
