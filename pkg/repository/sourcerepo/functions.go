package sourcerepo

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

// FindRepository walks up from startPath and opens the nearest repository.
// It returns nil, nil when no ancestor holds a .source directory.
func FindRepository(startPath scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	repo := NewSourceRepository(opts...)
	currentPath := startPath.String()

	for {
		repoPath, err := scpath.NewRepositoryPath(currentPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository path: %w", err)
		}

		exists, err := RepositoryExists(repo.fs, repoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to check repository existence: %w", err)
		}

		if exists {
			repo.workingDir = repoPath
			repo.sourceDir = repoPath.SourcePath()
			if err := repo.attach(); err != nil {
				return nil, err
			}
			return repo, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return nil, nil
		}
		currentPath = parentPath
	}
}

// RepositoryExists reports whether path has a .source directory.
func RepositoryExists(fs afero.Fs, path scpath.RepositoryPath) (bool, error) {
	ok, err := afero.DirExists(fs, path.SourcePath().String())
	if err != nil {
		return false, fmt.Errorf("failed to check .source directory: %w", err)
	}
	return ok, nil
}

// Open opens the existing repository rooted at path.
func Open(path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	repo := NewSourceRepository(opts...)

	exists, err := RepositoryExists(repo.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check repository existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("not a source repository: %s", path)
	}

	repo.workingDir = path
	repo.sourceDir = path.SourcePath()
	if err := repo.attach(); err != nil {
		return nil, err
	}
	return repo, nil
}

// InitializeRepository creates a new repository at path and returns it.
func InitializeRepository(path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	repo := NewSourceRepository(opts...)
	if err := repo.Initialize(path); err != nil {
		return nil, err
	}
	return repo, nil
}
