package store

import (
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

// ObjectStore reads and writes content-addressed objects.
type ObjectStore interface {
	// Initialize binds the store to <repo>/.source/objects, creating it if needed.
	Initialize(repoPath scpath.RepositoryPath) error

	// WriteObject computes the digest of obj and, when persist is true, stores the
	// compressed envelope under it. The digest is returned either way.
	WriteObject(obj objects.BaseObject, persist bool) (objects.ObjectHash, error)

	// ReadObject loads, verifies and decodes the object stored under hash.
	ReadObject(hash objects.ObjectHash) (objects.BaseObject, error)

	// HasObject reports whether an object file exists for hash.
	HasObject(hash objects.ObjectHash) (bool, error)
}
