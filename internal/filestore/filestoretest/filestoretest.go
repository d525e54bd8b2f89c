// Package filestoretest provides fixtures for code built on filestore.
package filestoretest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/dmitrijs2005/doclocker/internal/common"
)

const (
	MinSimulatedSize = 10_000
	MaxSimulatedSize = 1_010_000
)

// Simulated returns placeholder content for a document called name. The
// length is drawn uniformly from [MinSimulatedSize, MaxSimulatedSize).
func Simulated(name string) []byte {
	size := MinSimulatedSize + rand.IntN(MaxSimulatedSize-MinSimulatedSize)
	buf := bytes.Repeat([]byte{'.'}, size)
	copy(buf, "Simulated document: "+name+"\n")
	return buf
}

// MemStore is an in-memory filestore.Store. PutErr and RemoveErr, when set,
// are returned instead of doing the work.
type MemStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	PutErr    error
	RemoveErr error
}

func NewMemStore() *MemStore {
	return &MemStore{objects: map[string][]byte{}}
}

func (m *MemStore) Location(key string) string { return key }

func (m *MemStore) Put(_ context.Context, key string, r io.Reader) (string, int64, error) {
	if m.PutErr != nil {
		return "", 0, m.PutErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; ok {
		return "", 0, errors.New("object already exists")
	}
	m.objects[key] = data
	return key, int64(len(data)), nil
}

func (m *MemStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[location]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemStore) Remove(_ context.Context, location string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, location)
	return nil
}

// Content returns the stored bytes at location.
func (m *MemStore) Content(location string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[location]
	return data, ok
}

// Len reports how many objects are stored.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
