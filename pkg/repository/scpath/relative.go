package scpath

import (
	"fmt"
	"path"
	"strings"
)

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// IsValid checks if this is a non-empty path that stays inside the root
func (rp RelativePath) IsValid() bool {
	return len(rp) > 0 && IsPathSafe(string(rp))
}

// Normalize cleans the path and strips a leading "./". The root is "".
func (rp RelativePath) Normalize() RelativePath {
	if rp == "" {
		return ""
	}
	normalized := NormalizePath(string(rp))
	if normalized == "." {
		return ""
	}
	return RelativePath(normalized)
}

// Components returns the path components
func (rp RelativePath) Components() []string {
	normalized := rp.Normalize()
	if normalized == "" {
		return []string{}
	}
	return strings.Split(string(normalized), "/")
}

// Join appends slash-separated elements
func (rp RelativePath) Join(elem ...string) RelativePath {
	return RelativePath(path.Join(append([]string{string(rp)}, elem...)...)).Normalize()
}

// Base returns the last element of the path
func (rp RelativePath) Base() string {
	components := rp.Components()
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

// Dir returns all but the last element of the path
func (rp RelativePath) Dir() RelativePath {
	components := rp.Components()
	if len(components) <= 1 {
		return ""
	}
	return RelativePath(strings.Join(components[:len(components)-1], "/"))
}

// Depth returns the number of path components
func (rp RelativePath) Depth() int {
	return len(rp.Components())
}

// NewRelativePath creates and validates a new RelativePath
func NewRelativePath(p string) (RelativePath, error) {
	rp := RelativePath(p).Normalize()
	if !rp.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", p)
	}
	return rp, nil
}
