package overdose

import (
	"fmt"
)

// Load runs the preparation pipeline over an open source: resolve the
// schema against the header, coerce dates and ages, drop rows missing a
// required field, derive the year, and map indicator cells. Row-level
// problems are resolved by silent exclusion; only an unreadable source or
// a missing expected column is an error.
func Load(f *Files, sch *Schema) (*Table, error) {
	var (
		rows [][]string
		e    error
	)
	if rows, e = f.readAll(); e != nil {
		return nil, e
	}

	if !f.Header {
		return nil, fmt.Errorf("%s: header row required to resolve schema", f.FileName())
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty source", f.FileName())
	}

	var pos *positions
	if pos, e = sch.check(rows[0]); e != nil {
		return nil, fmt.Errorf("%s: %w", f.FileName(), e)
	}

	return buildTable(rows[1:], pos, f.DateFormats), nil
}

// LoadFile is the usual entry: open, load, close.
func LoadFile(path string, sch *Schema) (*Table, error) {
	f := NewFiles()
	if e := f.Open(path); e != nil {
		return nil, e
	}
	defer func() { _ = f.Close() }()

	return Load(f, sch)
}

// buildTable applies the drop/coerce/derive policy row by row, preserving
// source order. A cell is missing when it is empty or fails coercion;
// either drops the whole row.
func buildTable(rows [][]string, pos *positions, formats []string) *Table {
	var recs []*Record

	for ind := 0; ind < len(rows); ind++ {
		row := rows[ind]

		r, ok := buildRecord(row, pos, formats)
		if !ok {
			continue
		}

		recs = append(recs, r)
	}

	return newTable(recs, pos.indNames)
}

func buildRecord(row []string, pos *positions, formats []string) (*Record, bool) {
	cell := func(col int) string {
		if col >= len(row) {
			return ""
		}

		return row[col]
	}

	var (
		r  Record
		ok bool
	)

	if r.Date, ok = toDate(cell(pos.date), formats); !ok {
		return nil, false
	}

	if r.Age, ok = toAge(cell(pos.age)); !ok {
		return nil, false
	}

	if r.Sex = cell(pos.sex); r.Sex == "" {
		return nil, false
	}

	if r.Race = cell(pos.race); r.Race == "" {
		return nil, false
	}

	if r.DeathCounty = cell(pos.county); r.DeathCounty == "" {
		return nil, false
	}

	r.Year = r.Date.Year()

	// "Y" means present; every other marker, malformed or absent, is false.
	r.Substances = make(map[string]bool, len(pos.indNames))
	for j := 0; j < len(pos.indNames); j++ {
		r.Substances[pos.indNames[j]] = cell(pos.indCols[j]) == "Y"
	}

	return &r, true
}
