// Package filestore keeps document bytes. Objects are addressed by a key that
// embeds the owner id, a per-process monotonic millisecond timestamp and the
// sanitized original name, so two uploads never collide and no coordination
// with the catalog is needed to pick a name.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/filex"
)

// Store is implemented by every content backend.
//
// Location maps a key to the location Put would record for it. Put never
// overwrites an existing object. Open reports a missing object as
// common.ErrNotFound. Remove is idempotent.
type Store interface {
	Location(key string) string
	Put(ctx context.Context, key string, r io.Reader) (location string, size int64, err error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Remove(ctx context.Context, location string) error
}

// ErrInvalidKey is returned for keys that are not a single path element.
var ErrInvalidKey = errors.New("invalid object key")

// ObjectName builds "<owner>_<unix millis>_<sanitized name>".
func ObjectName(ownerID string, unixMilli int64, originalName string) string {
	return fmt.Sprintf("%s_%d_%s", filex.SanitizeName(ownerID), unixMilli, filex.SanitizeName(originalName))
}

// Namer hands out object names whose timestamps strictly increase, even when
// called twice within the same millisecond.
type Namer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNamer() *Namer {
	return &Namer{now: time.Now}
}

// Next returns a fresh object name for ownerID and originalName.
func (n *Namer) Next(ownerID, originalName string) string {
	n.mu.Lock()
	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	n.mu.Unlock()

	return ObjectName(ownerID, ms, originalName)
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Retrieve copies the object at location to dest. Unless replace is set an
// existing dest is left alone and common.ErrDestinationExists is returned.
// Content is written to a temporary file next to dest and renamed into place,
// so a failed copy never leaves a truncated dest behind.
func Retrieve(ctx context.Context, store Store, location, dest string, replace bool) error {
	if !replace {
		_, err := os.Stat(dest)
		if err == nil {
			return common.ErrDestinationExists
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat destination: %w", err)
		}
	}

	src, err := store.Open(ctx, location)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".doclocker-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to copy document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move document into place: %w", err)
	}
	return nil
}
