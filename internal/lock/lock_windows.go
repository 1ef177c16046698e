//go:build windows

package lock

import (
	"fmt"
	"os"
)

// LockFile attempts to acquire an exclusive lock guarding the given
// backing file.
//
// On Windows, this is implemented by atomically creating a file named
// "<path>.lock". If the file already exists, the backing file is assumed to
// be owned by another cache and ErrLocked is returned.
//
// The returned file handle must be kept open for the duration of the lock.
func LockFile(path string) (*os.File, error) {
	f, err := os.OpenFile(PathFor(path), os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	return f, nil
}

// UnlockFile releases a lock acquired via LockFile.
//
// On Windows, this removes the lock file from disk. UnlockFile should
// be called exactly once for each successful LockFile call.
func UnlockFile(f *os.File) error {
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
