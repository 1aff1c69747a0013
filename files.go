package overdose

import (
	"encoding/csv"
	"fmt"
	"os"
)

// All code interacting with files is here

const (
	Sep    = ','
	Header = true
)

// Files reads a delimited text source. The zero value is not usable;
// start from NewFiles and override fields before Open.
type Files struct {
	Sep         rune
	DateFormats []string
	Header      bool

	file     *os.File
	fileName string
}

func NewFiles() *Files {
	f := &Files{
		Sep:         Sep,
		DateFormats: DateFormats,
		Header:      Header,
	}

	return f
}

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		return f.file.Close()
	}

	return fmt.Errorf("no open files")
}

// readAll pulls every row. Ragged rows are tolerated here; short rows
// fall out later under the missing-field policy.
func (f *Files) readAll() ([][]string, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open files")
	}

	rdr := csv.NewReader(f.file)
	rdr.Comma = f.Sep
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	rdr.TrimLeadingSpace = true

	var (
		rows [][]string
		e    error
	)
	if rows, e = rdr.ReadAll(); e != nil {
		return nil, fmt.Errorf("cannot read %s: %w", f.fileName, e)
	}

	return rows, nil
}
