package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Exists checks if a file or directory exists at the given path.
// Returns an error only if there's a filesystem error other than non-existence.
func Exists(fs afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	return ok, nil
}

// IsDirectory checks if the path exists and is a directory.
func IsDirectory(fs afero.Fs, path string) (bool, error) {
	ok, err := afero.DirExists(fs, path)
	if err != nil {
		return false, fmt.Errorf("stat path: %w", err)
	}
	return ok, nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path, err)
	}
	return nil
}

// EnsureParentDir ensures that the parent directory of a file exists.
func EnsureParentDir(fs afero.Fs, path string) error {
	return EnsureDir(fs, filepath.Dir(path))
}

// ReadBytes reads a file and returns its raw bytes.
// A missing file yields nil bytes and a nil error.
func ReadBytes(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// ReadString reads a file and returns its content as a trimmed string.
func ReadString(fs afero.Fs, path string) (string, error) {
	data, err := ReadBytes(fs, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteConfig writes data with 0644 permissions, creating the parent directory.
func WriteConfig(fs afero.Fs, path string, data []byte) error {
	if err := EnsureParentDir(fs, path); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// WriteConfigString is WriteConfig for string content.
func WriteConfigString(fs afero.Fs, path, content string) error {
	return WriteConfig(fs, path, []byte(content))
}

// SafeRemove removes a file if it exists.
func SafeRemove(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
