package scpath

import (
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute path of a working tree root
// Example: "/home/user/myproject"
type RepositoryPath string

// SourcePath is a path inside the .source directory
type SourcePath string

// RelativePath is a slash-separated path relative to the repository root
// Example: "src/main.go"
type RelativePath string

// ObjectPath is the location of an object below the objects directory
// Format: "ab/cdef123..." (2-char prefix + 38-char suffix)
type ObjectPath string

// isHexString checks if a string contains only hex characters
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// IsPathSafe reports whether path is relative and stays inside its root.
func IsPathSafe(path string) bool {
	if path == ".." || strings.HasPrefix(path, "../") || strings.Contains(path, "/../") || strings.HasSuffix(path, "/..") {
		return false
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}
	return !strings.Contains(path, "\\")
}

// NormalizePath converts to forward slashes and drops "./" and trailing slashes.
func NormalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
