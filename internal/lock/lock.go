package lock

import "errors"

// LockFileSuffix is appended to a backing file path to name its lock file.
const LockFileSuffix = ".lock"

var ErrLocked = errors.New("backing file already in use by another cache")

// PathFor returns the lock file path guarding the given backing file.
func PathFor(path string) string {
	return path + LockFileSuffix
}
