package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/doclocker/internal/flagx"
)

var knownFlags = []string{
	"-driver", "-dsn", "-upload-dir", "-storage",
	"-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-prefix",
	"-password-scheme", "-log-level", "-log-format", "-log-file",
}

// parseFlags overlays cfg with command-line flags. Arguments it does not own
// are filtered out first; a malformed known flag panics.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("doclocker", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "metadata store driver (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "metadata store DSN")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "directory for uploaded files")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "file store backend (local or s3)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "custom s3 endpoint")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "key prefix inside the bucket")
	fs.StringVar(&cfg.PasswordScheme, "password-scheme", cfg.PasswordScheme, "password scheme (argon2id, bcrypt or plain)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (default stderr)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
