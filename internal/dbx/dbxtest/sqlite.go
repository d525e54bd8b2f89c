// Package dbxtest opens migrated SQLite databases for tests.
package dbxtest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/doclocker/internal/dbx"
	"github.com/dmitrijs2005/doclocker/internal/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// NewSQLite returns a private in-memory database with the current schema.
// It is closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := dbx.Open(context.Background(), dbx.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))

	return db
}
