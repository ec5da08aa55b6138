// Package fsutil provides filesystem helpers over afero so callers and
// tests can run against real or in-memory filesystems.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultFileMode is the permission mode used for files whose original
// mode cannot be determined.
const DefaultFileMode os.FileMode = 0o644

// ReadFile reads the named file from fsys.
func ReadFile(fsys afero.Fs, path string) ([]byte, error) {
	return afero.ReadFile(fsys, path)
}

// WriteAtomic writes content to path via a temp file in the same
// directory followed by a rename, so readers never observe a partial
// write. The target file's existing mode is preserved; a new file gets
// DefaultFileMode.
func WriteAtomic(fsys afero.Fs, path string, content []byte) error {
	mode := DefaultFileMode
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fsys.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
