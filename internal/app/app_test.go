package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/doclocker/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(dir, "doclocker.db")
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.PasswordScheme = "plain"
	cfg.LogFile = filepath.Join(dir, "doclocker.log")
	return cfg
}

func TestNew_LocalSQLite(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	var out bytes.Buffer
	a, err := New(ctx, cfg, strings.NewReader("3\n"), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Run(ctx))
	assert.Contains(t, out.String(), "Goodbye!")

	fi, err := os.Stat(cfg.UploadDir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir(), "upload dir must be created")

	logs, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "doclocker ready")
}

func TestNew_ReopensMigratedDatabase(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := New(ctx, cfg, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password, full_name, phone, created_at)
		 VALUES ('u1', 'alice', 'alice@example.org', 'pw', 'Alice', '', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err, "migrations must be idempotent")
	t.Cleanup(func() { _ = b.Close() })

	var n int
	require.NoError(t, b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNew_S3Backend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = config.StorageS3
	cfg.S3Bucket = "docs"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"
	cfg.S3AccessKey = "minio"
	cfg.S3SecretKey = "minio123"

	a, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err, "building the client needs no network")
	require.NoError(t, a.Close())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "driver", mutate: func(c *config.Config) { c.DatabaseDriver = "oracle" }, want: "unsupported database driver"},
		{name: "storage", mutate: func(c *config.Config) { c.StorageBackend = "tape" }, want: "unsupported storage backend"},
		{name: "scheme", mutate: func(c *config.Config) { c.PasswordScheme = "rot13" }, want: "unsupported password scheme"},
		{name: "log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, want: "invalid log level"},
		{name: "log file", mutate: func(c *config.Config) { c.LogFile = filepath.Join(t.TempDir(), "no", "such", "dir.log") }, want: "failed to open log file"},
		{name: "s3 bucket", mutate: func(c *config.Config) { c.StorageBackend = config.StorageS3 }, want: "s3 bucket is not configured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			a, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
