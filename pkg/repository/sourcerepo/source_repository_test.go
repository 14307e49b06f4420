package sourcerepo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/config"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/blob"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

const testRepoPath = scpath.RepositoryPath("/work/project")

func newTestRepo(t *testing.T) (*SourceRepository, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	repo, err := InitializeRepository(testRepoPath, WithFs(fs), WithLogger(logger.Discard()))
	require.NoError(t, err)
	return repo, fs
}

func TestNewSourceRepository(t *testing.T) {
	repo := NewSourceRepository()

	assert.False(t, repo.IsInitialized())
	assert.NotNil(t, repo.ObjectStore())
	assert.Equal(t, config.Default().Core, repo.Config().Core)

	_, err := repo.ReadObject(objects.ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"))
	assert.Error(t, err)
	_, err = repo.WriteObject(blob.NewBlob(nil))
	assert.Error(t, err)
	_, err = repo.WriteTree(context.Background(), "")
	assert.Error(t, err)
	assert.Panics(t, func() { repo.WorkingDirectory() })
}

func TestSourceRepository_Initialize(t *testing.T) {
	repo, fs := newTestRepo(t)

	assert.True(t, repo.IsInitialized())
	assert.Equal(t, testRepoPath, repo.WorkingDirectory())
	assert.Equal(t, testRepoPath.SourcePath(), repo.SourceDirectory())

	sp := testRepoPath.SourcePath()
	for _, dir := range []scpath.SourcePath{sp, sp.ObjectsPath(), sp.RefsPath(), sp.HeadsPath(), sp.TagsPath()} {
		ok, err := afero.DirExists(fs, dir.String())
		require.NoError(t, err)
		assert.True(t, ok, "missing %s", dir)
	}

	head, err := afero.ReadFile(fs, sp.HeadPath().String())
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(head))

	ok, err := afero.Exists(fs, sp.DescriptionPath().String())
	require.NoError(t, err)
	assert.True(t, ok)

	cfg, err := config.Load(config.LoadOptions{Fs: fs, Path: sp.ConfigPath().String()})
	require.NoError(t, err)
	assert.Equal(t, config.RepositoryLevel, cfg.Origin(config.KeyCompression))
}

func TestSourceRepository_InitializeTwice(t *testing.T) {
	_, fs := newTestRepo(t)

	err := NewSourceRepository(WithFs(fs)).Initialize(testRepoPath)
	assert.ErrorContains(t, err, "already a source repository")
}

func TestSourceRepository_WriteAndRead(t *testing.T) {
	repo, _ := newTestRepo(t)

	hash, err := repo.WriteObject(blob.NewBlob([]byte("hello\n")))
	require.NoError(t, err)
	assert.Equal(t, objects.ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"), hash)

	obj, err := repo.ReadObject(hash)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", obj.(*blob.Blob).Content().String())

	_, err = repo.ReadObject(objects.ObjectHash("0123456789abcdef0123456789abcdef01234567"))
	assert.ErrorIs(t, err, objects.ErrObjectNotFound)
}

func TestOpen(t *testing.T) {
	_, fs := newTestRepo(t)

	repo, err := Open(testRepoPath, WithFs(fs), WithLogger(logger.Discard()))
	require.NoError(t, err)
	assert.True(t, repo.IsInitialized())

	_, err = Open(scpath.RepositoryPath("/elsewhere"), WithFs(fs))
	assert.ErrorContains(t, err, "not a source repository")
}

func TestOpen_AppliesConfig(t *testing.T) {
	_, fs := newTestRepo(t)
	require.NoError(t, afero.WriteFile(fs, testRepoPath.SourcePath().ConfigPath().String(),
		[]byte("[core]\ncompression = 0\n[build]\nparallelism = 1\n"), 0o644))

	repo, err := Open(testRepoPath, WithFs(fs), WithConfigOverrides(map[string]any{config.KeyVerify: false}))
	require.NoError(t, err)

	assert.Equal(t, 0, repo.Config().Core.Compression)
	assert.Equal(t, 1, repo.Config().Build.Parallelism)
	assert.False(t, repo.Config().Objects.Verify)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, fs := newTestRepo(t)
	require.NoError(t, afero.WriteFile(fs, testRepoPath.SourcePath().ConfigPath().String(),
		[]byte("[core]\nrepositoryformatversion = 3\n"), 0o644))

	_, err := Open(testRepoPath, WithFs(fs))
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestFindRepository(t *testing.T) {
	_, fs := newTestRepo(t)
	require.NoError(t, fs.MkdirAll("/work/project/src/deep", 0o755))

	repo, err := FindRepository(scpath.RepositoryPath("/work/project/src/deep"), WithFs(fs))
	require.NoError(t, err)
	require.NotNil(t, repo)
	assert.Equal(t, testRepoPath, repo.WorkingDirectory())

	repo, err = FindRepository(scpath.RepositoryPath("/work"), WithFs(fs))
	require.NoError(t, err)
	assert.Nil(t, repo)
}

func TestRepositoryExists(t *testing.T) {
	_, fs := newTestRepo(t)

	ok, err := RepositoryExists(fs, testRepoPath)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = RepositoryExists(fs, "/work")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSourceRepository_WriteTree(t *testing.T) {
	repo, fs := newTestRepo(t)
	files := map[string]string{
		"README.md":        "# project\n",
		"debug.log":        "noise\n",
		"src/main.go":      "package main\n",
		"build/output.bin": "bin",
	}
	for name, content := range files {
		path := testRepoPath.Join(name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	require.NoError(t, afero.WriteFile(fs, testRepoPath.Join(".sourceignore"), []byte("*.log\nbuild/\n"), 0o644))

	hash, err := repo.WriteTree(context.Background(), "")
	require.NoError(t, err)

	obj, err := repo.ReadObject(hash)
	require.NoError(t, err)
	root := obj.(*tree.Tree)

	var names []string
	for _, e := range root.Entries() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{".sourceignore", "README.md", "src"}, names)

	sub, err := repo.WriteTree(context.Background(), "src")
	require.NoError(t, err)
	assert.Equal(t, root.Entries()[2].Hash(), sub)

	_, err = repo.WriteTree(context.Background(), "../outside")
	assert.Error(t, err)
}

func TestSourceRepository_WriteTreeHonorsFileMode(t *testing.T) {
	_, fs := newTestRepo(t)
	require.NoError(t, afero.WriteFile(fs, testRepoPath.Join("run.sh"), []byte("#!/bin/sh\n"), 0o755))

	modeOf := func(overrides map[string]any) string {
		repo, err := Open(testRepoPath, WithFs(fs), WithLogger(logger.Discard()), WithConfigOverrides(overrides))
		require.NoError(t, err)

		hash, err := repo.WriteTree(context.Background(), "")
		require.NoError(t, err)
		obj, err := repo.ReadObject(hash)
		require.NoError(t, err)
		for _, e := range obj.(*tree.Tree).Entries() {
			if e.Name() == "run.sh" {
				return e.Mode()
			}
		}
		t.Fatalf("run.sh missing from tree %s", hash)
		return ""
	}

	assert.Equal(t, "100755", modeOf(nil))
	assert.Equal(t, "100644", modeOf(map[string]any{config.KeyFileMode: false}))
}

func TestSourceRepository_WriteDefaultIgnore(t *testing.T) {
	repo, fs := newTestRepo(t)

	created, err := repo.WriteDefaultIgnore()
	require.NoError(t, err)
	assert.True(t, created)

	content, err := afero.ReadFile(fs, testRepoPath.Join(scpath.IgnoreFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), "*.tmp")

	created, err = repo.WriteDefaultIgnore()
	require.NoError(t, err)
	assert.False(t, created)
}
