package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/doclocker/internal/flagx"
)

// JsonConfig mirrors Config for unmarshalling. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	DatabaseDriver *string `json:"database_driver"`
	DatabaseDSN    *string `json:"database_dsn"`
	UploadDir      *string `json:"upload_dir"`
	StorageBackend *string `json:"storage_backend"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	S3Prefix       *string `json:"s3_prefix"`
	PasswordScheme *string `json:"password_scheme"`
	LogLevel       *string `json:"log_level"`
	LogFormat      *string `json:"log_format"`
	LogFile        *string `json:"log_file"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
// It panics when the file cannot be read or parsed.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.DatabaseDriver, jc.DatabaseDriver)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.UploadDir, jc.UploadDir)
	set(&cfg.StorageBackend, jc.StorageBackend)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.PasswordScheme, jc.PasswordScheme)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.LogFile, jc.LogFile)
}
