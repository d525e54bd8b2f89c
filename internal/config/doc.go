// Package config loads runtime configuration for DocLocker.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. DOCLOCKER_* environment variables.
//  4. Command-line flags.
//
// Later sources override earlier ones. The merged result is validated before
// LoadConfig returns it.
//
// Supported flags
//
//	-driver string           metadata store driver: sqlite or postgres
//	-dsn string              metadata store DSN (file path for sqlite)
//	-upload-dir string       directory for the local file store
//	-storage string          file store backend: local or s3
//	-s3-bucket string        bucket for the s3 backend
//	-s3-region string        region for the s3 backend
//	-s3-endpoint string      custom endpoint, e.g. a MinIO URL
//	-s3-prefix string        key prefix inside the bucket
//	-password-scheme string  argon2id, bcrypt or plain
//	-log-level string        debug, info, warn or error
//	-log-format string       text or json
//	-log-file string         append logs to this file instead of stderr
//
// S3 credentials are only read from JSON or the environment
// (DOCLOCKER_S3_ACCESS_KEY, DOCLOCKER_S3_SECRET_KEY).
//
// # JSON schema
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "doclocker.db",
//	  "upload_dir": "uploads",
//	  "storage_backend": "local",
//	  "s3_bucket": "", "s3_region": "", "s3_base_endpoint": "",
//	  "s3_access_key": "", "s3_secret_key": "", "s3_prefix": "",
//	  "password_scheme": "argon2id",
//	  "log_level": "info", "log_format": "text", "log_file": ""
//	}
package config
