package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/srcobjects/pkg/common/fileops"
	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

// Ref is a resolved reference.
type Ref struct {
	Name RefPath
	Hash objects.ObjectHash
}

// RefManager reads and writes the reference files of one repository: HEAD at
// the top of the metadata directory and everything else below refs/.
type RefManager struct {
	fs       afero.Fs
	log      *slog.Logger
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager creates a reference manager for the metadata directory
// sourceDir. A nil logger falls back to logger.Default.
func NewRefManager(fsys afero.Fs, sourceDir scpath.SourcePath, log *slog.Logger) *RefManager {
	return &RefManager{
		fs:       fsys,
		log:      logger.OrDefault(log).With("component", pkgName),
		refsPath: sourceDir.RefsPath(),
		headPath: sourceDir.HeadPath(),
	}
}

// Init creates the refs directories and points HEAD at the default branch.
func (rm *RefManager) Init() error {
	for _, dir := range []scpath.SourcePath{rm.refsPath, rm.refsPath.Join(scpath.HeadsDir), rm.refsPath.Join(scpath.TagsDir)} {
		if err := fileops.EnsureDir(rm.fs, dir.String()); err != nil {
			return fmt.Errorf("failed to create refs directory: %w", err)
		}
	}

	if err := rm.SetSymbolicRef(RefHEAD, DefaultBranch); err != nil {
		return fmt.Errorf("failed to create HEAD file: %w", err)
	}
	return nil
}

// ReadRef returns the trimmed content of a reference file.
func (rm *RefManager) ReadRef(ref RefPath) (string, error) {
	fullPath, err := rm.resolveReferencePath(ref)
	if err != nil {
		return "", err
	}

	data, err := afero.ReadFile(rm.fs, fullPath.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newError(CodeRefNotFound, "read", ref, "reference not found", nil)
		}
		return "", fmt.Errorf("error reading ref %s: %w", ref, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// UpdateRef points ref at hash, replacing the file atomically.
func (rm *RefManager) UpdateRef(ref RefPath, hash objects.ObjectHash) error {
	if err := hash.Validate(); err != nil {
		return fmt.Errorf("invalid hash: %w", err)
	}
	if err := rm.writeRef(ref, hash.String()+"\n"); err != nil {
		return err
	}

	rm.log.Debug("updated ref", "ref", ref, "hash", hash.Short())
	return nil
}

// SetSymbolicRef makes ref a symbolic reference to target.
func (rm *RefManager) SetSymbolicRef(ref, target RefPath) error {
	if !target.IsValid() {
		return newError(CodeInvalidRef, "symbolic-ref", target, "invalid target", nil)
	}
	return rm.writeRef(ref, SymbolicRefPrefix+target.String()+"\n")
}

func (rm *RefManager) writeRef(ref RefPath, content string) error {
	fullPath, err := rm.resolveReferencePath(ref)
	if err != nil {
		return err
	}

	if err := fileops.EnsureParentDir(rm.fs, fullPath.String()); err != nil {
		return fmt.Errorf("failed to create ref directory: %w", err)
	}
	if err := fileops.AtomicWrite(rm.fs, fullPath.String(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write ref %s: %w", ref, err)
	}
	return nil
}

// ResolveToHash follows symbolic references until it reaches a digest.
func (rm *RefManager) ResolveToHash(ref RefPath) (objects.ObjectHash, error) {
	currentRef := ref

	for range MaxRefDepth {
		content, err := rm.ReadRef(currentRef)
		if err != nil {
			return "", err
		}

		if target, ok := strings.CutPrefix(content, SymbolicRefPrefix); ok {
			currentRef = RefPath(strings.TrimSpace(target))
			continue
		}

		hash, err := objects.NewObjectHashFromString(content)
		if err != nil {
			return "", newError(CodeInvalidRef, "resolve", currentRef,
				fmt.Sprintf("invalid ref content %q", content), err)
		}
		return hash, nil
	}

	return "", newError(CodeRefDepth, "resolve", ref, "reference depth exceeded", nil)
}

// Target follows symbolic references from ref and returns the reference that
// holds, or would hold, a digest. A reference that does not exist yet is its
// own target, so an unborn branch named by HEAD is returned as is.
func (rm *RefManager) Target(ref RefPath) (RefPath, error) {
	current := ref

	for range MaxRefDepth {
		content, err := rm.ReadRef(current)
		if errors.Is(err, ErrRefNotFound) {
			return current, nil
		}
		if err != nil {
			return "", err
		}

		target, ok := strings.CutPrefix(content, SymbolicRefPrefix)
		if !ok {
			return current, nil
		}
		current = RefPath(strings.TrimSpace(target))
	}

	return "", newError(CodeRefDepth, "target", ref, "reference depth exceeded", nil)
}

// Resolve finds the first of Candidates(name) that exists and resolves it.
func (rm *RefManager) Resolve(name string) (Ref, error) {
	for _, candidate := range Candidates(name) {
		if !candidate.IsValid() {
			continue
		}
		hash, err := rm.ResolveToHash(candidate)
		if errors.Is(err, ErrRefNotFound) {
			continue
		}
		if err != nil {
			return Ref{}, err
		}
		return Ref{Name: candidate, Hash: hash}, nil
	}
	return Ref{}, newError(CodeRefNotFound, "resolve", RefPath(name), "no such reference", nil)
}

// DeleteRef removes a reference. It reports whether a file was removed.
func (rm *RefManager) DeleteRef(ref RefPath) (bool, error) {
	exists, err := rm.Exists(ref)
	if err != nil || !exists {
		return false, err
	}

	fullPath, _ := rm.resolveReferencePath(ref)
	if err := fileops.SafeRemove(rm.fs, fullPath.String()); err != nil {
		return false, err
	}

	rm.log.Debug("deleted ref", "ref", ref)
	return true, nil
}

// Exists checks if a reference exists
func (rm *RefManager) Exists(ref RefPath) (bool, error) {
	fullPath, err := rm.resolveReferencePath(ref)
	if err != nil {
		return false, err
	}
	return fileops.Exists(rm.fs, fullPath.String())
}

// List returns every reference below prefix (refs/ when empty), resolved and
// sorted by name. References that fail to resolve are skipped with a warning.
func (rm *RefManager) List(prefix RefPath) ([]Ref, error) {
	root := rm.refsPath
	if prefix != "" {
		p, err := rm.resolveReferencePath(prefix)
		if err != nil {
			return nil, err
		}
		root = p
	}

	exists, err := fileops.IsDirectory(rm.fs, root.String())
	if err != nil || !exists {
		return nil, err
	}

	base := rm.refsPath.Dir().String()
	var out []Ref
	walkErr := afero.Walk(rm.fs, root.String(), func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		name := RefPath(filepath.ToSlash(rel))

		hash, err := rm.ResolveToHash(name)
		if err != nil {
			rm.log.Warn("skipping unreadable ref", "ref", name, "error", err)
			return nil
		}
		out = append(out, Ref{Name: name, Hash: hash})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to list refs: %w", walkErr)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// HeadPath returns the full path to the HEAD file
func (rm *RefManager) HeadPath() scpath.SourcePath {
	return rm.headPath
}

// RefsPath returns the full path to the refs directory
func (rm *RefManager) RefsPath() scpath.SourcePath {
	return rm.refsPath
}

// resolveReferencePath maps a reference to its file. HEAD lives next to refs/;
// "refs/x" and "x" both map to refs/x.
func (rm *RefManager) resolveReferencePath(ref RefPath) (scpath.SourcePath, error) {
	refStr := strings.TrimSpace(ref.String())

	if refStr == scpath.HeadFile {
		return rm.headPath, nil
	}
	if !RefPath(refStr).IsValid() {
		return "", newError(CodeInvalidRef, "path", ref, "invalid reference name", nil)
	}

	if after, ok := strings.CutPrefix(refStr, scpath.RefsDir+"/"); ok {
		return rm.refsPath.Join(after), nil
	}
	return rm.refsPath.Join(refStr), nil
}
