package overdose

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "Date,Age,Sex,Race,DeathCounty,Heroin,Cocaine,Fentanyl,Ethanol,Amphet"

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deaths.csv")
	body := ""
	for _, l := range lines {
		body += l + "\n"
	}

	require.Nil(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadDropsIncomplete(t *testing.T) {
	path := writeCSV(t, sampleHeader,
		"2015-01-01,34,M,White,Hartford,,,Y,,",        // complete
		"2015-06-01,,F,White,Hartford,Y,,,,",          // missing age
		"2015-06-01,41,,White,Hartford,,,,,",          // missing sex
		"not a date,50,M,White,Hartford,,,,,",         // unparseable date
		"2016-02-03,forty,M,White,New Haven,,,,,",     // non-numeric age
		"2016-02-03,-3,M,White,New Haven,,,,,",        // negative age
		"2016-02-03,28,F,Black,New Haven,Y,Y,,Y,",     // complete
	)

	tbl, e := LoadFile(path, DefaultSchema())
	require.Nil(t, e)

	assert.Equal(t, 2, tbl.RowCount())
	for _, r := range tbl.Records() {
		assert.False(t, r.Date.IsZero())
		assert.GreaterOrEqual(t, r.Age, 0)
		assert.NotEmpty(t, r.Sex)
		assert.NotEmpty(t, r.Race)
		assert.NotEmpty(t, r.DeathCounty)
		assert.Equal(t, r.Date.Year(), r.Year)
	}

	// order preserved
	assert.Equal(t, "Hartford", tbl.Records()[0].DeathCounty)
	assert.Equal(t, "New Haven", tbl.Records()[1].DeathCounty)
}

func TestIndicatorMapping(t *testing.T) {
	path := writeCSV(t, sampleHeader,
		"2015-01-01,34,M,White,Hartford,Y,N,Y,garbage,y")

	tbl, e := LoadFile(path, DefaultSchema())
	require.Nil(t, e)

	r := tbl.Records()[0]
	assert.True(t, r.Substances["Heroin"])
	assert.True(t, r.Substances["Fentanyl"])

	// anything that isn't exactly "Y" is false, including lowercase
	assert.False(t, r.Substances["Cocaine"])
	assert.False(t, r.Substances["Ethanol"])
	assert.False(t, r.Substances["Amphet"])

	// columns absent from the source are skipped, not created
	_, ok := r.Substances["Methadone"]
	assert.False(t, ok)
	assert.Equal(t, []string{"Heroin", "Cocaine", "Fentanyl", "Ethanol", "Amphet"}, tbl.Indicators())
}

func TestMissingColumn(t *testing.T) {
	path := writeCSV(t, "Date,Age,Sex,Race", "2015-01-01,34,M,White")

	_, e := LoadFile(path, DefaultSchema())
	require.NotNil(t, e)
	assert.Contains(t, e.Error(), "missing expected column DeathCounty")
}

func TestMissingFile(t *testing.T) {
	_, e := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), DefaultSchema())
	assert.NotNil(t, e)
}

func TestSelectorsAndBounds(t *testing.T) {
	path := writeCSV(t, sampleHeader,
		"2015-01-01,34,M,White,New Haven,,,,,",
		"2015-01-02,61,F,White,Hartford,,,,,",
		"2015-01-03,22,M,Black,Hartford,,,,,")

	tbl, e := LoadFile(path, DefaultSchema())
	require.Nil(t, e)

	assert.Equal(t, []string{"Hartford", "New Haven"}, tbl.Counties())
	assert.Equal(t, []string{"F", "M"}, tbl.Genders())

	minAge, maxAge := tbl.AgeBounds()
	assert.Equal(t, 22, minAge)
	assert.Equal(t, 61, maxAge)
}

func TestDateFormats(t *testing.T) {
	path := writeCSV(t, sampleHeader,
		"06/28/2012 12:00:00 AM,34,M,White,Hartford,,,,,",
		"1/2/2015,40,F,White,Hartford,,,,,")

	tbl, e := LoadFile(path, DefaultSchema())
	require.Nil(t, e)
	require.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 2012, tbl.Records()[0].Year)
	assert.Equal(t, 2015, tbl.Records()[1].Year)
}

func TestCache(t *testing.T) {
	path := writeCSV(t, sampleHeader, "2015-01-01,34,M,White,Hartford,,,,,")

	c := NewCache(nil)

	tbl1, e1 := c.Table(path)
	require.Nil(t, e1)

	tbl2, e2 := c.Table(path)
	require.Nil(t, e2)

	// unchanged file: same table, no re-read
	assert.Same(t, tbl1, tbl2)

	// rewrite with a new mtime: next call reloads
	body := sampleHeader + "\n2015-01-01,34,M,White,Hartford,,,,,\n2016-05-05,50,F,White,Tolland,,,,,\n"
	require.Nil(t, os.WriteFile(path, []byte(body), 0o644))
	require.Nil(t, os.Chtimes(path, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))

	tbl3, e3 := c.Table(path)
	require.Nil(t, e3)
	assert.Equal(t, 2, tbl3.RowCount())

	c.Drop(path)
	tbl4, e4 := c.Table(path)
	require.Nil(t, e4)
	assert.NotSame(t, tbl3, tbl4)
	assert.Equal(t, tbl3.RowCount(), tbl4.RowCount())
}
