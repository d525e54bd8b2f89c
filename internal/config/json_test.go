package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doclocker.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"storage_backend":  "s3",
			"s3_bucket":        "docs",
			"s3_base_endpoint": "http://minio:9000",
			"s3_secret_key":    "",
		})
		os.Args = []string{"doclocker", "-config", path}

		cfg := defaults()
		cfg.S3SecretKey = "keep-me?"
		parseJson(&cfg)

		want := defaults()
		want.StorageBackend = "s3"
		want.S3Bucket = "docs"
		want.S3BaseEndpoint = "http://minio:9000"
		want.S3SecretKey = ""
		assert.Empty(t, cmp.Diff(want, cfg), "explicit empty strings are applied")
	})

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"doclocker", "-dsn", "x.db"}
		cfg := defaults()
		parseJson(&cfg)
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"doclocker", "-c", bad}

		cfg := defaults()
		require.Panics(t, func() { parseJson(&cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"doclocker", "-c", filepath.Join(t.TempDir(), "absent.json")}
		cfg := defaults()
		require.Panics(t, func() { parseJson(&cfg) })
	})
}
