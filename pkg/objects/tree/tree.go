package tree

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

// Tree is a directory snapshot: an ordered list of entries.
//
// Payload layout, with no separators between entries:
//
//	mode SP name NUL [20-byte digest]
//	mode SP name NUL [20-byte digest]
//	...
//
// NewTree sorts entries canonically so the digest only depends on the set of
// entries. Deserialize keeps whatever order the payload has.
type Tree struct {
	entries []*TreeEntry
}

// NewTree creates a Tree from entries in canonical order. The input slice is not
// modified.
func NewTree(entries []*TreeEntry) *Tree {
	sorted := make([]*TreeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompareTo(sorted[j]) < 0
	})
	return &Tree{entries: sorted}
}

// Type returns the object type
func (t *Tree) Type() objects.ObjectType {
	return objects.TreeType
}

// Serialize concatenates the encoded entries.
func (t *Tree) Serialize() (objects.ObjectContent, error) {
	var buf bytes.Buffer
	for _, entry := range t.entries {
		serialized, err := entry.Serialize()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize tree entry %q: %w", entry.Name(), err)
		}
		buf.Write(serialized)
	}
	return objects.ObjectContent(buf.Bytes()), nil
}

// Deserialize walks the payload entry by entry. A trailing partial entry fails
// with MALFORMED_TREE.
func (t *Tree) Deserialize(data objects.ObjectContent) error {
	var entries []*TreeEntry
	offset := 0

	for offset < len(data) {
		entry, next, err := DeserializeTreeEntry(data, offset)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		offset = next
	}

	t.entries = entries
	return nil
}

// Hash returns the digest of the tree's envelope.
func (t *Tree) Hash() (objects.ObjectHash, error) {
	return objects.HashObject(t)
}

// Entries returns a copy of the tree entries
func (t *Tree) Entries() []*TreeEntry {
	entries := make([]*TreeEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// IsEmpty returns true if the tree has no entries
func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

// String returns a human-readable representation
func (t *Tree) String() string {
	hash, err := t.Hash()
	if err != nil {
		return fmt.Sprintf("Tree{entries: %d, error: %v}", len(t.entries), err)
	}
	return fmt.Sprintf("Tree{entries: %d, hash: %s}", len(t.entries), hash.Short())
}
