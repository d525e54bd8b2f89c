package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/filex"
)

// LocalStore keeps objects as files directly under one directory. Locations
// are reported relative to the configured root, e.g. "uploads/<key>".
type LocalStore struct {
	root string
	abs  string
}

// NewLocalStore creates root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	return &LocalStore{root: filepath.Clean(root), abs: abs}, nil
}

func (s *LocalStore) Location(key string) string {
	return filepath.Join(s.root, key)
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := validKey(key); err != nil {
		return "", 0, err
	}

	path := filepath.Join(s.abs, key)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return s.Location(key), n, nil
}

func (s *LocalStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	path, err := s.resolve(location)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Remove(ctx context.Context, location string) error {
	path, err := s.resolve(location)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a location produced by Put back to an absolute path. Anything
// outside the root is rejected.
func (s *LocalStore) resolve(location string) (string, error) {
	location = filepath.Clean(location)
	key := filepath.Base(location)
	if filepath.Dir(location) != s.root {
		return "", fmt.Errorf("%w: %q is outside %s", ErrInvalidKey, location, s.root)
	}
	if err := validKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.abs, key), nil
}
