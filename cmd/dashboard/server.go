package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/invertedv/overdose"
	"github.com/invertedv/overdose/agg"
	"github.com/invertedv/overdose/plot"
)

// server answers each request with a complete recomputation from the
// immutable prepared table; there is no per-session state.
type server struct {
	cache  *overdose.Cache
	path   string
	fixed  *overdose.Table // set when the source is a database query
	source string

	logger *slog.Logger
}

func newServer(cfg config, logger *slog.Logger) (*server, error) {
	s := &server{logger: logger}

	if cfg.Dialect == "" {
		s.cache = overdose.NewCache(overdose.DefaultSchema())
		s.path = cfg.DataPath
		s.source = cfg.DataPath

		// fail now, not on first request
		if _, e := s.cache.Table(s.path); e != nil {
			return nil, e
		}

		return s, nil
	}

	db, e := openDB(cfg.Dialect, cfg.DSN)
	if e != nil {
		return nil, e
	}

	var dlct *overdose.Dialect
	if dlct, e = overdose.NewDialect(cfg.Dialect, db); e != nil {
		return nil, e
	}

	if s.fixed, e = dlct.Load(cfg.Query, overdose.DefaultSchema()); e != nil {
		return nil, e
	}

	s.source = cfg.Dialect

	return s, nil
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/api/filters", s.getFilters)
	r.Get("/api/summary", s.getSummary)
	r.Get("/api/records", s.getRecords)
	r.Get("/api/figures", s.getFigures)

	return r
}

func (s *server) table() (*overdose.Table, error) {
	if s.fixed != nil {
		return s.fixed, nil
	}

	return s.cache.Table(s.path)
}

// filtersResponse enumerates the selector choices the front end offers.
type filtersResponse struct {
	Counties []string `json:"counties"`
	Genders  []string `json:"genders"`
	MinAge   int      `json:"minAge"`
	MaxAge   int      `json:"maxAge"`
}

func (s *server) getFilters(w http.ResponseWriter, r *http.Request) {
	tbl, e := s.table()
	if e != nil {
		s.fail(w, r, e)
		return
	}

	minAge, maxAge := tbl.AgeBounds()
	resp := &filtersResponse{
		Counties: append([]string{agg.All}, tbl.Counties()...),
		Genders:  append([]string{agg.All}, tbl.Genders()...),
		MinAge:   minAge,
		MaxAge:   maxAge,
	}

	render.JSON(w, r, resp)
}

func (s *server) getSummary(w http.ResponseWriter, r *http.Request) {
	tbl, e := s.table()
	if e != nil {
		s.fail(w, r, e)
		return
	}

	render.JSON(w, r, agg.Run(tbl, selection(r, tbl)))
}

func (s *server) getRecords(w http.ResponseWriter, r *http.Request) {
	tbl, e := s.table()
	if e != nil {
		s.fail(w, r, e)
		return
	}

	v := agg.Apply(tbl, selection(r, tbl))
	render.JSON(w, r, v.Records())
}

func (s *server) getFigures(w http.ResponseWriter, r *http.Request) {
	tbl, e := s.table()
	if e != nil {
		s.fail(w, r, e)
		return
	}

	res := agg.Run(tbl, selection(r, tbl))
	figs := map[string]*grob.Fig{
		"overTime":    plot.TimeSeries(res.OverTime).Fig,
		"byCounty":    plot.ByCounty(res.ByCounty).Fig,
		"substances":  plot.Substances(res.Substances).Fig,
		"ageByGender": plot.AgeHistogram(res.AgeByGender).Fig,
	}

	render.JSON(w, r, figs)
}

// selection parses the filter query params, falling back to the
// pass-through selection for anything absent or malformed.
func selection(r *http.Request, tbl *overdose.Table) agg.Selection {
	sel := agg.NewSelection(tbl)
	q := r.URL.Query()

	if c := q.Get("county"); c != "" {
		sel.County = c
	}

	if g := q.Get("gender"); g != "" {
		sel.Gender = g
	}

	if v := q.Get("minAge"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			sel.MinAge = n
		}
	}

	if v := q.Get("maxAge"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			sel.MaxAge = n
		}
	}

	return sel
}

type errResponse struct {
	Error string `json:"error"`
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, e error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", e)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, &errResponse{Error: fmt.Sprintf("%v", e)})
}
