// Package app wires configuration, storage and services into the console.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/doclocker/internal/cli"
	"github.com/dmitrijs2005/doclocker/internal/config"
	"github.com/dmitrijs2005/doclocker/internal/cryptox"
	"github.com/dmitrijs2005/doclocker/internal/dbx"
	"github.com/dmitrijs2005/doclocker/internal/filestore"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/doclocker/internal/services"
)

type App struct {
	db      *sql.DB
	logFile io.Closer
	console *cli.App
}

// New opens the metadata store, applies migrations and builds the services
// for cfg. Console input and output go through in and out.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
	}

	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	a.db, err = dbx.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.New(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	if err := rm.RunMigrations(ctx, a.db); err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := cryptox.NewPasswordVerifier(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	validate := services.NewValidator()
	users := services.NewUserService(a.db, rm, verifier, validate, logger)
	docs := services.NewDocumentService(a.db, rm, store, filestore.NewNamer(), validate, logger)

	a.console = cli.NewApp(users, docs, in, out, logger)

	logger.Info(ctx, "doclocker ready",
		"driver", cfg.DatabaseDriver, "storage", cfg.StorageBackend, "password_scheme", cfg.PasswordScheme)
	return a, nil
}

func newStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		s, err := filestore.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageS3:
		s, err := filestore.NewS3Store(ctx, filestore.S3Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

// Run blocks until the user leaves the console.
func (a *App) Run(ctx context.Context) error {
	return a.console.Run(ctx)
}

// Close releases the database handle and the log file.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
