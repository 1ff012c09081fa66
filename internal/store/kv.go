package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Slot names in the key-value backend. They match the keys the browser
// version of the tracker used in localStorage.
const (
	ItemsKey  = "expiryTrackerItems"
	SecretKey = "expiryTrackerPassword"
)

// Backend names accepted by [OpenKV].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// KV is the string-keyed slot storage the Store persists into.
type KV interface {
	// Get returns the value stored under key. ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the value stored under key.
	Set(key, value string) error
	Close() error
}

// IsValidBackend reports whether name is a known backend.
func IsValidBackend(name string) bool {
	return name == BackendFile || name == BackendSQLite
}

// OpenKV opens the named backend rooted at dir, creating dir if needed.
func OpenKV(backend, dir string) (KV, error) {
	err := os.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	switch backend {
	case BackendFile:
		return NewFileKV(dir), nil
	case BackendSQLite:
		return OpenSQLiteKV(filepath.Join(dir, sqliteFileName))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// MemKV keeps slots in memory. Useful for tests and throwaway sessions.
type MemKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemKV returns an empty in-memory backend.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

// Get implements [KV].
func (m *MemKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]

	return v, ok, nil
}

// Set implements [KV].
func (m *MemKV) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

// Close implements [KV].
func (m *MemKV) Close() error {
	return nil
}
