package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// locksDirName is the subdirectory for lock files, next to the slots they guard.
const locksDirName = ".locks"

// LockTimeout is the timeout for acquiring a slot lock.
const LockTimeout = 2 * time.Second

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

var (
	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)

// withLock runs handler while holding an exclusive lock for path.
func withLock(path string, handler func() error) error {
	lock, err := acquireLockWithTimeout(path, LockTimeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	defer lock.release()

	return handler()
}

type fileLock struct {
	path string
	file *os.File
}

// release removes the lock file while still holding the lock, then unlocks.
func (l *fileLock) release() {
	if l.file != nil {
		_ = os.Remove(l.path)
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

// acquireLockWithTimeout takes an exclusive flock on .locks/<base>.lock.
// After acquiring it checks the inode again: a holder that released in the
// meantime removed the file, and locking a stale inode would lock nothing.
func acquireLockWithTimeout(path string, timeout time.Duration) (*fileLock, error) {
	locksDir := filepath.Join(filepath.Dir(path), locksDirName)
	lockPath := filepath.Join(locksDir, filepath.Base(path)+".lock")

	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}

		err := os.MkdirAll(locksDir, dirPerms)
		if err != nil {
			return nil, fmt.Errorf("creating locks dir: %w", err)
		}

		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errLockFileOpen, err)
		}

		var openStat unix.Stat_t

		err = unix.Fstat(int(file.Fd()), &openStat)
		if err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", err)
		}

		fd := int(file.Fd())
		done := make(chan error, 1)

		go func() {
			done <- unix.Flock(fd, unix.LOCK_EX)
		}()

		select {
		case err := <-done:
			if err != nil {
				_ = file.Close()

				return nil, fmt.Errorf("flock: %w", err)
			}

			var pathStat unix.Stat_t

			statErr := unix.Stat(lockPath, &pathStat)
			if statErr != nil || pathStat.Ino != openStat.Ino {
				_ = unix.Flock(fd, unix.LOCK_UN)
				_ = file.Close()

				continue
			}

			return &fileLock{path: lockPath, file: file}, nil
		case <-time.After(remaining):
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}
	}
}
