package treebuilder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/blob"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

const (
	pkgName = "treebuilder"

	// concurrencyThreshold is the minimum number of subdirectories
	// required before they are built concurrently.
	concurrencyThreshold = 2
)

// ObjectWriter persists objects and returns their digest.
type ObjectWriter interface {
	WriteObject(obj objects.BaseObject, persist bool) (objects.ObjectHash, error)
}

// TreeBuilder snapshots a live directory into tree and blob objects.
//
// Every entry is examined without following links:
//
//	regular file   100644, or 100755 if any execute bit is set
//	symbolic link  120000, blob holds the link target
//	directory      040000, recursive tree
//
// Anything else fails the build with UNSUPPORTED_ENTRY_KIND. The .source
// directory is never included.
type TreeBuilder struct {
	store       ObjectWriter
	fs          afero.Fs
	parallelism int
	ignore      Matcher
	trustExec   bool
	log         *slog.Logger
}

// NewTreeBuilder creates a TreeBuilder that writes into store.
func NewTreeBuilder(store ObjectWriter, opts ...Option) *TreeBuilder {
	tb := &TreeBuilder{
		store:       store,
		fs:          afero.NewOsFs(),
		parallelism: DefaultParallelism,
		trustExec:   true,
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.log = logger.OrDefault(tb.log)
	return tb
}

// BuildTree writes the tree for dir and everything below it, returning the
// root tree digest. On error nothing is written for any directory whose
// subtree failed; blobs and sibling trees finished before the failure remain
// in the store.
func (tb *TreeBuilder) BuildTree(ctx context.Context, dir string) (objects.ObjectHash, error) {
	info, err := tb.lstat(dir)
	if err != nil {
		return "", fmt.Errorf("build tree: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("build tree: %s is not a directory", dir)
	}

	return tb.buildTree(ctx, dir, "")
}

// buildTree builds the tree for the directory at absPath, whose path relative
// to the build root is rel.
func (tb *TreeBuilder) buildTree(ctx context.Context, absPath string, rel scpath.RelativePath) (objects.ObjectHash, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	infos, err := afero.ReadDir(tb.fs, absPath)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", absPath, err)
	}

	entries := make([]*tree.TreeEntry, 0, len(infos))
	var subdirs []string

	for _, di := range infos {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := di.Name()
		if name == scpath.SourceDir {
			continue
		}

		childAbs := filepath.Join(absPath, name)
		info, err := tb.lstat(childAbs)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", childAbs, err)
		}

		childRel := rel.Join(name)
		if tb.ignore != nil && tb.ignore.IsIgnored(childRel.String(), info.IsDir()) {
			tb.log.Debug("ignored", "path", childRel.String())
			continue
		}

		if info.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}

		entry, err := tb.buildLeaf(childAbs, childRel, info)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry)
	}

	dirEntries, err := tb.buildSubdirectories(ctx, absPath, rel, subdirs)
	if err != nil {
		return "", err
	}
	entries = append(entries, dirEntries...)

	hash, err := tb.store.WriteObject(tree.NewTree(entries), true)
	if err != nil {
		return "", fmt.Errorf("write tree %s: %w", displayPath(rel), err)
	}

	tb.log.Debug("tree written", "path", displayPath(rel), "hash", hash.String(), "entries", len(entries))
	return hash, nil
}

// buildLeaf classifies a non-directory entry and stores its blob.
func (tb *TreeBuilder) buildLeaf(absPath string, rel scpath.RelativePath, info os.FileInfo) (*tree.TreeEntry, error) {
	mode, err := objects.ClassifyFileMode(info.Mode())
	if err != nil {
		return nil, objects.NewError(pkgName, objects.CodeUnsupportedEntryKind, "classify",
			fmt.Sprintf("%s has unsupported type %s", rel, info.Mode().Type()), nil).
			WithContext("path", rel.String())
	}
	if mode == objects.FileModeExecutable && !tb.trustExec {
		mode = objects.FileModeRegular
	}

	var content []byte
	if mode.IsSymlink() {
		target, err := tb.readlink(absPath)
		if err != nil {
			return nil, fmt.Errorf("read link %s: %w", rel, err)
		}
		content = []byte(target)
	} else {
		content, err = afero.ReadFile(tb.fs, absPath)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", rel, err)
		}
	}

	hash, err := tb.store.WriteObject(blob.NewBlob(content), true)
	if err != nil {
		return nil, fmt.Errorf("write blob %s: %w", rel, err)
	}

	return tree.NewTreeEntry(mode, info.Name(), hash)
}

// buildSubdirectories builds one tree per subdirectory. With enough siblings
// they are built concurrently, at most parallelism at a time; the first
// failure cancels the rest.
func (tb *TreeBuilder) buildSubdirectories(ctx context.Context, absPath string, rel scpath.RelativePath, names []string) ([]*tree.TreeEntry, error) {
	entries := make([]*tree.TreeEntry, len(names))

	build := func(ctx context.Context, i int) error {
		name := names[i]
		hash, err := tb.buildTree(ctx, filepath.Join(absPath, name), rel.Join(name))
		if err != nil {
			return err
		}
		entry, err := tree.NewTreeEntry(objects.FileModeDirectory, name, hash)
		if err != nil {
			return err
		}
		entries[i] = entry
		return nil
	}

	if tb.parallelism == 1 || len(names) < concurrencyThreshold {
		for i := range names {
			if err := build(ctx, i); err != nil {
				return nil, err
			}
		}
		return entries, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tb.parallelism)
	for i := range names {
		g.Go(func() error {
			return build(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (tb *TreeBuilder) lstat(name string) (os.FileInfo, error) {
	if l, ok := tb.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return tb.fs.Stat(name)
}

func (tb *TreeBuilder) readlink(name string) (string, error) {
	if r, ok := tb.fs.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.ErrUnsupported}
}

func displayPath(rel scpath.RelativePath) string {
	if rel == "" {
		return "."
	}
	return rel.String()
}
