// Command dashboard serves the drug-death analytics engine over HTTP JSON.
// A rendering front end owns the widgets; this process owns the prepared
// table, the filter engine and the figure builders.
package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DataPath string `envconfig:"DATA_PATH" default:"drug_deaths.csv"`
	Listen   string `envconfig:"LISTEN" default:":8080"`

	// optional database source; when Dialect is set the file path is ignored
	Dialect string `envconfig:"DB_DIALECT"`
	DSN     string `envconfig:"DB_DSN"`
	Query   string `envconfig:"DB_QUERY"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg config
	if e := envconfig.Process("dash", &cfg); e != nil {
		logger.Error("bad configuration", "error", e)
		os.Exit(1)
	}

	srv, e := newServer(cfg, logger)
	if e != nil {
		logger.Error("cannot start", "error", e)
		os.Exit(1)
	}

	logger.Info("listening", "addr", cfg.Listen, "source", srv.source)
	if e := http.ListenAndServe(cfg.Listen, srv.routes()); e != nil {
		logger.Error("server stopped", "error", e)
		os.Exit(1)
	}
}

// openDB wires the driver for the configured dialect: clickhouse-go for
// ClickHouse, the pgx stdlib shim for Postgres.
func openDB(dialect, dsn string) (*sql.DB, error) {
	if strings.ToLower(dialect) == "clickhouse" {
		return clickhouse.OpenDB(&clickhouse.Options{Addr: []string{dsn}}), nil
	}

	return sql.Open("pgx", dsn)
}
