package sourcerepo

import (
	"context"

	"github.com/utkarsh5026/srcobjects/pkg/config"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
	"github.com/utkarsh5026/srcobjects/pkg/store"
)

// Repository is a working tree with its .source metadata directory.
type Repository interface {
	// Initialize creates a new repository at the given path
	Initialize(path scpath.RepositoryPath) error

	// WorkingDirectory returns the path to the repository's working directory
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .source directory
	SourceDirectory() scpath.SourcePath

	// ObjectStore returns the object store for this repository
	ObjectStore() store.ObjectStore

	// Config returns the effective configuration
	Config() *config.Config

	// ReadObject reads an object by its digest
	ReadObject(hash objects.ObjectHash) (objects.BaseObject, error)

	// WriteObject persists an object and returns its digest
	WriteObject(obj objects.BaseObject) (objects.ObjectHash, error)

	// WriteTree snapshots a directory of the working tree
	WriteTree(ctx context.Context, rel scpath.RelativePath) (objects.ObjectHash, error)
}
