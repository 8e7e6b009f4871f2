// Package filelock serializes concurrent CLI invocations with an
// advisory lock on a file in the todo directory.
package filelock

import "os"

const lockFileMode = 0o600

// Lock is a held advisory lock. Release it exactly once.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on the file at path,
// creating it if needed. It blocks while another process holds the lock.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path inside the todo dir
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

// Release unlocks and closes the underlying file.
func (l *Lock) Release() error {
	unlockErr := unlockFile(l.f)
	if closeErr := l.f.Close(); unlockErr == nil {
		return closeErr
	}
	return unlockErr
}
