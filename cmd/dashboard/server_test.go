package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *server {
	t.Helper()

	body := "Date,Age,Sex,Race,DeathCounty,Heroin,Fentanyl\n" +
		"2016-01-10,34,M,White,Hartford,Y,Y\n" +
		"2016-03-04,39,F,White,Hartford,,\n" +
		"2017-02-14,61,F,White,Tolland,,Y\n"

	path := filepath.Join(t.TempDir(), "deaths.csv")
	require.Nil(t, os.WriteFile(path, []byte(body), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, e := newServer(config{DataPath: path}, logger)
	require.Nil(t, e)

	return srv
}

func get(t *testing.T, srv *server, url string, out any) int {
	t.Helper()

	req := httptest.NewRequest("GET", url, nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if out != nil && rec.Code == 200 {
		require.Nil(t, json.Unmarshal(rec.Body.Bytes(), out))
	}

	return rec.Code
}

func TestGetFilters(t *testing.T) {
	srv := testServer(t)

	var resp filtersResponse
	code := get(t, srv, "/api/filters", &resp)

	require.Equal(t, 200, code)
	assert.Equal(t, []string{"All", "Hartford", "Tolland"}, resp.Counties)
	assert.Equal(t, []string{"All", "F", "M"}, resp.Genders)
	assert.Equal(t, 34, resp.MinAge)
	assert.Equal(t, 61, resp.MaxAge)
}

func TestGetSummary(t *testing.T) {
	srv := testServer(t)

	var resp struct {
		TotalCount int  `json:"totalCount"`
		AverageAge int  `json:"averageAge"`
		HasData    bool `json:"hasData"`
		OverTime   []struct {
			Year  int `json:"year"`
			Count int `json:"count"`
		} `json:"overTime"`
	}

	code := get(t, srv, "/api/summary", &resp)
	require.Equal(t, 200, code)
	assert.True(t, resp.HasData)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 44, resp.AverageAge)
	require.Len(t, resp.OverTime, 2)
	assert.Equal(t, 2016, resp.OverTime[0].Year)
	assert.Equal(t, 2, resp.OverTime[0].Count)
}

func TestGetSummaryFiltered(t *testing.T) {
	srv := testServer(t)

	var resp struct {
		TotalCount int  `json:"totalCount"`
		HasData    bool `json:"hasData"`
	}

	code := get(t, srv, "/api/summary?county=Hartford&gender=F", &resp)
	require.Equal(t, 200, code)
	assert.Equal(t, 1, resp.TotalCount)

	// empty result degrades to "no data", not an error
	code = get(t, srv, "/api/summary?county=Fairfield", &resp)
	require.Equal(t, 200, code)
	assert.Zero(t, resp.TotalCount)
	assert.False(t, resp.HasData)
}

func TestGetRecords(t *testing.T) {
	srv := testServer(t)

	var recs []struct {
		Age         int    `json:"age"`
		DeathCounty string `json:"deathCounty"`
	}

	code := get(t, srv, "/api/records?minAge=40&maxAge=150", &recs)
	require.Equal(t, 200, code)
	require.Len(t, recs, 1)
	assert.Equal(t, 61, recs[0].Age)
	assert.Equal(t, "Tolland", recs[0].DeathCounty)
}

func TestGetFigures(t *testing.T) {
	srv := testServer(t)

	var figs map[string]json.RawMessage
	code := get(t, srv, "/api/figures", &figs)

	require.Equal(t, 200, code)
	for _, key := range []string{"overTime", "byCounty", "substances", "ageByGender"} {
		assert.Contains(t, figs, key)
	}
}

func TestMissingSource(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, e := newServer(config{DataPath: filepath.Join(t.TempDir(), "nope.csv")}, logger)
	assert.NotNil(t, e)
}
