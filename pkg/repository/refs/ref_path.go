package refs

import (
	"fmt"
	"strings"
)

// RefPath is a reference name relative to the metadata directory.
// Examples: "refs/heads/main", "refs/tags/v1.0.0", "HEAD"
type RefPath string

var invalidRefSequences = []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "@{", "//"}

// String returns the reference path as a string
func (rp RefPath) String() string {
	return string(rp)
}

// IsValid checks the path against the reference naming rules: no control
// characters, no glob or revision syntax, no "." component prefix and no
// ".lock" suffix.
func (rp RefPath) IsValid() bool {
	s := string(rp)
	if len(s) == 0 {
		return false
	}

	for _, invalid := range invalidRefSequences {
		if strings.Contains(s, invalid) {
			return false
		}
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	if strings.HasSuffix(s, ".lock") || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "/") {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "/") || strings.Contains(s, "/.") {
		return false
	}
	return true
}

// IsBranch checks if this is a branch reference
func (rp RefPath) IsBranch() bool {
	return strings.HasPrefix(string(rp), string(RefHeads)+"/")
}

// IsTag checks if this is a tag reference
func (rp RefPath) IsTag() bool {
	return strings.HasPrefix(string(rp), string(RefTags)+"/")
}

// IsHEAD checks if this is the HEAD reference
func (rp RefPath) IsHEAD() bool {
	return rp == RefHEAD
}

// ShortName strips the refs/heads/ or refs/tags/ prefix.
// "refs/heads/main" -> "main", "HEAD" -> "HEAD"
func (rp RefPath) ShortName() string {
	s := string(rp)
	if rp.IsBranch() {
		return strings.TrimPrefix(s, string(RefHeads)+"/")
	}
	if rp.IsTag() {
		return strings.TrimPrefix(s, string(RefTags)+"/")
	}
	return s
}

// NewBranchRef creates a branch reference path
func NewBranchRef(name string) (RefPath, error) {
	return newPrefixedRef(RefHeads, "branch", name)
}

// NewTagRef creates a tag reference path
func NewTagRef(name string) (RefPath, error) {
	return newPrefixedRef(RefTags, "tag", name)
}

func newPrefixedRef(prefix RefPath, what, name string) (RefPath, error) {
	if len(name) == 0 {
		return "", fmt.Errorf("%s name cannot be empty", what)
	}
	refPath := RefPath(string(prefix) + "/" + name)
	if !refPath.IsValid() {
		return "", fmt.Errorf("invalid %s name: %s", what, name)
	}
	return refPath, nil
}

// Candidates lists the references a short name may denote, in lookup order:
// the name itself when it is HEAD or starts with refs/, then refs/<name>,
// refs/tags/<name> and refs/heads/<name>.
func Candidates(name string) []RefPath {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if name == string(RefHEAD) || strings.HasPrefix(name, "refs/") {
		return []RefPath{RefPath(name)}
	}
	return []RefPath{
		RefPath("refs/" + name),
		RefPath(string(RefTags) + "/" + name),
		RefPath(string(RefHeads) + "/" + name),
	}
}
