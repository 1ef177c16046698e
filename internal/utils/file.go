package utils

import (
	"os"
	"path/filepath"
)

// StatFile stats path. A missing file reports (nil, false, nil); any other
// stat failure is returned.
func StatFile(path string) (os.FileInfo, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return info, true, nil
}

// FileSize returns the size of the file at path, with the same missing-file
// reporting as StatFile.
func FileSize(path string) (int64, bool, error) {
	info, ok, err := StatFile(path)
	if !ok {
		return 0, false, err
	}
	return info.Size(), true, nil
}

// WriteFileAtomic replaces the file at path with data. The bytes go to a
// temporary file in the same directory which is synced and then renamed over
// path, so readers see either the old content or the new content in full.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
