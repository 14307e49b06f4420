package sourcerepo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/srcobjects/pkg/common/fileops"
	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/config"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/repository/ignore"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
	"github.com/utkarsh5026/srcobjects/pkg/store"
	"github.com/utkarsh5026/srcobjects/pkg/treebuilder"
)

const (
	defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"
)

// SourceRepository manages the .source directory of a working tree:
//
//	<working-directory>/
//	├─ .source/
//	│  ├─ objects/        object files, ab/cdef123...
//	│  ├─ refs/
//	│  │  ├─ heads/
//	│  │  └─ tags/
//	│  ├─ HEAD
//	│  ├─ config
//	│  └─ description
//	├─ .sourceignore      optional
//	└─ ...
type SourceRepository struct {
	fs          afero.Fs
	log         *slog.Logger
	overrides   map[string]any
	workingDir  scpath.RepositoryPath
	sourceDir   scpath.SourcePath
	objectStore *store.FileObjectStore
	refs        *refs.RefManager
	config      *config.Config
	initialized bool
}

// NewSourceRepository creates an unbound repository. Call Initialize or use
// Open to attach it to a directory.
func NewSourceRepository(opts ...Option) *SourceRepository {
	sr := &SourceRepository{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(sr)
	}
	sr.log = logger.OrDefault(sr.log)
	sr.config = config.Default()
	sr.objectStore = sr.newStore()
	return sr
}

// Initialize creates a new repository at the given path.
//
// Directories created: .source/objects, .source/refs/heads, .source/refs/tags.
// Files created: HEAD (refs/heads/master), config (builtin values) and
// description.
func (sr *SourceRepository) Initialize(path scpath.RepositoryPath) error {
	exists, err := RepositoryExists(sr.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check if repository exists: %w", err)
	}
	if exists {
		return fmt.Errorf("already a source repository: %s", path)
	}

	sr.workingDir = path
	sr.sourceDir = path.SourcePath()

	if err := sr.createDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := sr.createInitialFiles(); err != nil {
		return fmt.Errorf("failed to create initial files: %w", err)
	}

	return sr.attach()
}

// attach loads the configuration and binds the object store.
func (sr *SourceRepository) attach() error {
	cfg, err := config.Load(config.LoadOptions{
		Fs:        sr.fs,
		Path:      sr.sourceDir.ConfigPath().String(),
		Overrides: sr.overrides,
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	sr.config = cfg
	sr.objectStore = sr.newStore()
	sr.refs = refs.NewRefManager(sr.fs, sr.sourceDir, sr.log)

	if err := sr.objectStore.Initialize(sr.workingDir); err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	sr.initialized = true
	sr.log.Debug("repository opened", "path", sr.workingDir.String())
	return nil
}

func (sr *SourceRepository) newStore() *store.FileObjectStore {
	return store.NewFileObjectStore(sr.fs,
		store.WithCompressionLevel(sr.config.Core.Compression),
		store.WithVerify(sr.config.Objects.Verify),
		store.WithLogger(sr.log))
}

// WorkingDirectory returns the path to the repository's working directory
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	if !sr.initialized {
		panic("repository not initialized")
	}
	return sr.workingDir
}

// SourceDirectory returns the path to the .source directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	if !sr.initialized {
		panic("repository not initialized")
	}
	return sr.sourceDir
}

// ObjectStore returns the object store for this repository
func (sr *SourceRepository) ObjectStore() store.ObjectStore {
	return sr.objectStore
}

// Store returns the concrete object store, which also exposes raw reads.
func (sr *SourceRepository) Store() *store.FileObjectStore {
	return sr.objectStore
}

// Refs returns the reference manager. It is nil until the repository is
// initialized or opened.
func (sr *SourceRepository) Refs() *refs.RefManager {
	return sr.refs
}

// Config returns the effective configuration
func (sr *SourceRepository) Config() *config.Config {
	return sr.config
}

// Fs returns the filesystem the repository lives on
func (sr *SourceRepository) Fs() afero.Fs {
	return sr.fs
}

// ReadObject reads an object by its digest
func (sr *SourceRepository) ReadObject(hash objects.ObjectHash) (objects.BaseObject, error) {
	if !sr.initialized {
		return nil, fmt.Errorf("repository not initialized")
	}

	obj, err := sr.objectStore.ReadObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return obj, nil
}

// WriteObject writes an object to the repository and returns its hash
func (sr *SourceRepository) WriteObject(obj objects.BaseObject) (objects.ObjectHash, error) {
	if !sr.initialized {
		return "", fmt.Errorf("repository not initialized")
	}

	hash, err := sr.objectStore.WriteObject(obj, true)
	if err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return hash, nil
}

// WriteTree builds and persists the tree of the directory rel inside the
// working tree. The ignore file named by build.ignorefile is read from that
// directory.
func (sr *SourceRepository) WriteTree(ctx context.Context, rel scpath.RelativePath) (objects.ObjectHash, error) {
	if !sr.initialized {
		return "", fmt.Errorf("repository not initialized")
	}

	rel = rel.Normalize()
	if rel != "" && !rel.IsValid() {
		return "", fmt.Errorf("path %q is outside the working tree", rel)
	}

	dir := sr.workingDir.JoinRelative(rel)
	rules, err := ignore.LoadFile(sr.fs, scpath.RepositoryPath(dir).Join(sr.config.Build.IgnoreFile))
	if err != nil {
		return "", fmt.Errorf("failed to load ignore rules: %w", err)
	}

	builder := treebuilder.NewTreeBuilder(sr.objectStore,
		treebuilder.WithFs(sr.fs),
		treebuilder.WithParallelism(sr.config.Build.Parallelism),
		treebuilder.WithIgnore(rules),
		treebuilder.WithFileMode(sr.config.Core.FileMode),
		treebuilder.WithLogger(sr.log))

	return builder.BuildTree(ctx, dir)
}

// WriteDefaultIgnore creates the ignore file in the working tree with a
// starter set of patterns. An existing file is left alone.
func (sr *SourceRepository) WriteDefaultIgnore() (bool, error) {
	path := sr.workingDir.Join(sr.config.Build.IgnoreFile)
	exists, err := fileops.Exists(sr.fs, path)
	if err != nil || exists {
		return false, err
	}
	if err := fileops.WriteConfigString(sr.fs, path, ignore.DefaultIgnore); err != nil {
		return false, err
	}
	return true, nil
}

// IsInitialized returns whether the repository has been initialized
func (sr *SourceRepository) IsInitialized() bool {
	return sr.initialized
}

// createDirectories creates all necessary directories for the repository
func (sr *SourceRepository) createDirectories() error {
	directories := []scpath.SourcePath{
		sr.sourceDir,
		sr.sourceDir.ObjectsPath(),
	}

	for _, dir := range directories {
		if err := fileops.EnsureDir(sr.fs, dir.String()); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// createInitialFiles writes HEAD, description and the builtin config.
func (sr *SourceRepository) createInitialFiles() error {
	if err := refs.NewRefManager(sr.fs, sr.sourceDir, sr.log).Init(); err != nil {
		return err
	}

	descPath := sr.sourceDir.DescriptionPath().String()
	if err := fileops.WriteConfigString(sr.fs, descPath, defaultDescription); err != nil {
		return fmt.Errorf("failed to create %s file: %w", descPath, err)
	}

	if err := config.Default().Save(sr.fs, sr.sourceDir.ConfigPath().String()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}
