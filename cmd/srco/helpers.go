package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

var errNotARepository = errors.New("not a srco repository (or any parent up to mount point)")

// startDir is the directory commands resolve relative paths against.
func (o *globalOptions) startDir() (string, error) {
	if o.workDir != "" {
		return filepath.Abs(o.workDir)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return dir, nil
}

// resolvePath makes p absolute against startDir.
func (o *globalOptions) resolvePath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	dir, err := o.startDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p), nil
}

func (o *globalOptions) repoOptions() ([]sourcerepo.Option, error) {
	overrides, err := o.configOverrides()
	if err != nil {
		return nil, err
	}
	return []sourcerepo.Option{
		sourcerepo.WithLogger(logger.Default),
		sourcerepo.WithConfigOverrides(overrides),
	}, nil
}

// openRepository finds the repository enclosing startDir.
func (o *globalOptions) openRepository() (*sourcerepo.SourceRepository, error) {
	dir, err := o.startDir()
	if err != nil {
		return nil, err
	}
	opts, err := o.repoOptions()
	if err != nil {
		return nil, err
	}

	repo, err := sourcerepo.FindRepository(scpath.RepositoryPath(dir), opts...)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, errNotARepository
	}
	return repo, nil
}
