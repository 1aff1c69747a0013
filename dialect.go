package overdose

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// All code interacting with a database is here

const (
	ch = "clickhouse"
	pg = "postgres"
)

// Dialect loads the dataset from a database instead of a file. The query's
// result columns are matched against the same declared schema as the CSV
// path, and rows pass through the same drop/coerce policy. Read-only:
// nothing here writes to the source.
//
// The caller owns the *sql.DB and registers the driver -- clickhouse-go
// for ClickHouse, the pgx stdlib shim for Postgres.
type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)

	if dialect != ch && dialect != pg {
		return nil, fmt.Errorf("unsupported dialect %s", dialect)
	}

	if db == nil {
		return nil, fmt.Errorf("nil db for dialect %s", dialect)
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// Load runs qry and prepares the result. Fatal errors are the query
// itself failing or a missing expected column; row-level problems drop
// the row, as with files.
func (d *Dialect) Load(qry string, sch *Schema) (*Table, error) {
	rows, e := d.db.Query(qry)
	if e != nil {
		return nil, fmt.Errorf("%s query failed: %w", d.dialect, e)
	}
	defer func() { _ = rows.Close() }()

	var header []string
	if header, e = rows.Columns(); e != nil {
		return nil, e
	}

	var pos *positions
	if pos, e = sch.check(header); e != nil {
		return nil, e
	}

	var raw [][]string
	for rows.Next() {
		vals := make([]any, len(header))
		for ind := range vals {
			vals[ind] = new(any)
		}

		if e = rows.Scan(vals...); e != nil {
			return nil, e
		}

		row := make([]string, len(vals))
		for ind := 0; ind < len(vals); ind++ {
			row[ind] = cellString(*vals[ind].(*any))
		}

		raw = append(raw, row)
	}

	if e = rows.Err(); e != nil {
		return nil, e
	}

	return buildTable(raw, pos, DateFormats), nil
}

// cellString renders a driver value the way it would appear in a CSV cell,
// so both sources share one coercion path.
func cellString(x any) string {
	switch v := x.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}
