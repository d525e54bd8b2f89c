package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EveryDialectHasTheSameVersions(t *testing.T) {
	sqlite, err := fs.Glob(Migrations, SQLiteDir+"/*.sql")
	require.NoError(t, err)
	postgres, err := fs.Glob(Migrations, PostgresDir+"/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, sqlite)
	require.Len(t, postgres, len(sqlite))

	for i := range sqlite {
		assert.Equal(t,
			strings.TrimPrefix(sqlite[i], SQLiteDir+"/"),
			strings.TrimPrefix(postgres[i], PostgresDir+"/"))
	}
}

func TestMigrations_HaveGooseAnnotations(t *testing.T) {
	err := fs.WalkDir(Migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(Migrations, path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", path)
		assert.Contains(t, string(data), "-- +goose Down", path)
		return nil
	})
	require.NoError(t, err)
}
