package overdose

import (
	"fmt"
)

// KnownIndicators are the substance columns the source may carry. Columns
// absent from a particular file are skipped, not errors.
var KnownIndicators = []string{
	"Heroin", "Cocaine", "Fentanyl", "Oxycodone", "Oxymorphone",
	"Ethanol", "Hydrocodone", "Benzodiazepine", "Methadone",
	"Amphet", "Tramad", "Morphine_NotHeroin",
}

// Schema maps the logical fields to the raw column headers. The required
// columns must all be present; Load fails fast if one is missing.
type Schema struct {
	Date        string
	Age         string
	Sex         string
	Race        string
	DeathCounty string

	Indicators []string
}

func DefaultSchema() *Schema {
	return &Schema{
		Date:        "Date",
		Age:         "Age",
		Sex:         "Sex",
		Race:        "Race",
		DeathCounty: "DeathCounty",
		Indicators:  KnownIndicators,
	}
}

// positions holds the resolved column index of each field for one source.
// An indicator missing from the header is simply dropped from indNames.
type positions struct {
	date, age, sex, race, county int

	indNames []string
	indCols  []int
}

func (s *Schema) check(header []string) (*positions, error) {
	p := &positions{}

	required := []struct {
		name string
		dest *int
	}{
		{s.Date, &p.date},
		{s.Age, &p.age},
		{s.Sex, &p.sex},
		{s.Race, &p.race},
		{s.DeathCounty, &p.county},
	}

	for _, req := range required {
		var col int
		if col = position(req.name, header); col < 0 {
			return nil, fmt.Errorf("missing expected column %s", req.name)
		}

		*req.dest = col
	}

	for _, nm := range s.Indicators {
		if col := position(nm, header); col >= 0 {
			p.indNames = append(p.indNames, nm)
			p.indCols = append(p.indCols, col)
		}
	}

	return p, nil
}
