package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// FileKV stores each slot as a plain file named after its key.
// Writes are atomic (temp file + rename) and serialized with a flock.
type FileKV struct {
	dir string
}

// NewFileKV returns a file backend rooted at dir. dir must exist.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Dir returns the directory holding the slot files.
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	return filepath.Join(f.dir, key), nil
}

// Get implements [KV].
func (f *FileKV) Get(key string) (string, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return string(data), true, nil
}

// Set implements [KV].
func (f *FileKV) Set(key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	return withLock(path, func() error {
		writeErr := atomic.WriteFile(path, strings.NewReader(value))
		if writeErr != nil {
			return fmt.Errorf("write %s: %w", key, writeErr)
		}

		return nil
	})
}

// Close implements [KV].
func (*FileKV) Close() error {
	return nil
}
