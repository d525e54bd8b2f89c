package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the metadata store and verifies it is reachable.
//
// SQLite handles get foreign keys enabled, portable timestamps and a single
// connection so an in-memory database is shared by every query.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return db, nil
}

// sqliteDSN appends the connection parameters Open relies on unless the
// caller already set them.
func sqliteDSN(dsn string) string {
	add := func(p string) {
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	if !strings.Contains(dsn, "foreign_keys") {
		add("_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "_time_format=") {
		add("_time_format=sqlite")
	}
	return dsn
}
