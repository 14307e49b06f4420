package tree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

const pkgName = "tree"

// TreeEntry is one leaf of a tree: a mode, a single path component and the digest
// of the blob or sub-tree it names.
//
// Serialized format inside a tree payload:
//
//	[mode] [space] [name] [null byte] [20-byte digest]
//
// The mode is kept as the exact ASCII text read or written ("100644", "40000",
// "040000"), so decoding and re-encoding a tree never changes its bytes.
type TreeEntry struct {
	mode string
	name string
	hash objects.ObjectHash
}

// NewTreeEntry creates an entry from a typed mode.
func NewTreeEntry(mode objects.FileMode, name string, hash objects.ObjectHash) (*TreeEntry, error) {
	return NewTreeEntryFromStrings(mode.ToOctalString(), name, hash.String())
}

// NewTreeEntryFromStrings validates and creates an entry from its textual parts.
func NewTreeEntryFromStrings(mode, name, hash string) (*TreeEntry, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	h, err := objects.NewObjectHashFromString(hash)
	if err != nil {
		return nil, err
	}

	return &TreeEntry{mode: mode, name: name, hash: h}, nil
}

// Mode returns the entry mode as written in the payload
func (e *TreeEntry) Mode() string {
	return e.mode
}

// Name returns the entry name
func (e *TreeEntry) Name() string {
	return e.name
}

// Hash returns the digest the entry points at
func (e *TreeEntry) Hash() objects.ObjectHash {
	return e.hash
}

// FileMode parses the entry mode.
func (e *TreeEntry) FileMode() (objects.FileMode, error) {
	return objects.FromOctalString(e.mode)
}

// IsDirectory returns true if this entry names a sub-tree
func (e *TreeEntry) IsDirectory() bool {
	m, err := e.FileMode()
	return err == nil && m.IsDirectory()
}

// ObjectType is the kind of object the entry's digest refers to.
func (e *TreeEntry) ObjectType() objects.ObjectType {
	m, err := e.FileMode()
	switch {
	case err != nil:
		return objects.BlobType
	case m.IsDirectory():
		return objects.TreeType
	case m.Type() == objects.FileModeTypeGitlink:
		return objects.CommitType
	default:
		return objects.BlobType
	}
}

// Serialize encodes this entry for inclusion in a tree payload.
func (e *TreeEntry) Serialize() ([]byte, error) {
	raw, err := e.hash.Raw()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(e.mode)+len(e.name)+2+objects.RawHashLength)
	out = append(out, e.mode...)
	out = append(out, objects.SpaceByte)
	out = append(out, e.name...)
	out = append(out, objects.NullByte)
	out = append(out, raw[:]...)
	return out, nil
}

// sortKey is the name used for canonical ordering: directories compare as if
// their name ended in "/".
func (e *TreeEntry) sortKey() string {
	if e.IsDirectory() {
		return e.name + "/"
	}
	return e.name
}

// CompareTo orders entries canonically. Returns a negative value, zero or a
// positive value as e sorts before, equal to or after other.
func (e *TreeEntry) CompareTo(other *TreeEntry) int {
	return strings.Compare(e.sortKey(), other.sortKey())
}

// DeserializeTreeEntry decodes the entry starting at offset and returns it along
// with the offset just past its last byte.
func DeserializeTreeEntry(data []byte, offset int) (*TreeEntry, int, error) {
	spaceIndex := bytes.IndexByte(data[offset:], objects.SpaceByte)
	if spaceIndex == -1 {
		return nil, 0, malformed(offset, "missing space after mode")
	}
	spaceIndex += offset

	mode := string(data[offset:spaceIndex])
	if err := validateMode(mode); err != nil {
		return nil, 0, err
	}

	nullIndex := bytes.IndexByte(data[spaceIndex+1:], objects.NullByte)
	if nullIndex == -1 {
		return nil, 0, malformed(offset, "missing null byte after name")
	}
	nullIndex += spaceIndex + 1

	name := string(data[spaceIndex+1 : nullIndex])
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	start := nullIndex + 1
	end := start + objects.RawHashLength
	if end > len(data) {
		return nil, 0, malformed(offset, fmt.Sprintf("truncated digest: %d of %d bytes", len(data)-start, objects.RawHashLength))
	}

	raw, err := objects.NewRawHashFromBytes(data[start:end])
	if err != nil {
		return nil, 0, err
	}

	return &TreeEntry{mode: mode, name: name, hash: raw.Hash()}, end, nil
}

func malformed(offset int, msg string) error {
	return objects.NewError(pkgName, objects.CodeMalformedTree, "decode entry",
		fmt.Sprintf("at offset %d: %s", offset, msg), nil)
}

// validateMode accepts five or six ASCII digits.
func validateMode(mode string) error {
	if len(mode) < 5 || len(mode) > 6 {
		return objects.NewError(pkgName, objects.CodeMalformedTree, "validate mode",
			fmt.Sprintf("mode %q must be 5 or 6 digits", mode), nil)
	}
	for i := 0; i < len(mode); i++ {
		if mode[i] < '0' || mode[i] > '9' {
			return objects.NewError(pkgName, objects.CodeMalformedTree, "validate mode",
				fmt.Sprintf("mode %q contains a non-digit", mode), nil)
		}
	}
	return nil
}

// validateName rejects names that are not a single path component.
func validateName(name string) error {
	if name == "" {
		return objects.NewError(pkgName, objects.CodeMalformedTree, "validate name", "name cannot be empty", nil)
	}
	if strings.ContainsAny(name, "/\x00") {
		return objects.NewError(pkgName, objects.CodeMalformedTree, "validate name",
			fmt.Sprintf("invalid characters in name %q", name), nil)
	}
	return nil
}
