package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloDigest     = "ce013625030ba8dba906f756967f9e9ca394464a"
	emptyTreeDigest = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"
)

func TestInitCommand(t *testing.T) {
	th := NewTestHelper(t)

	out := th.MustRun("init")
	assert.Contains(t, out, "Initialized empty repository")

	for _, p := range []string{"objects", "refs/heads", "refs/tags", "HEAD", "config", "description"} {
		_, err := os.Stat(filepath.Join(th.Dir(), ".source", filepath.FromSlash(p)))
		assert.NoError(t, err, p)
	}

	head, err := os.ReadFile(filepath.Join(th.Dir(), ".source", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(head))

	_, err = th.Run("init")
	assert.Error(t, err, "reinitializing should fail")
}

func TestInitCommand_IgnoreTemplate(t *testing.T) {
	th := NewTestHelper(t)
	th.MustRun("init", "--ignore-template")

	data, err := os.ReadFile(filepath.Join(th.Dir(), ".sourceignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".DS_Store")
}

func TestInitCommand_Path(t *testing.T) {
	th := NewTestHelper(t)
	th.MustRun("init", "nested/project")

	_, err := os.Stat(filepath.Join(th.Dir(), "nested", "project", ".source", "HEAD"))
	assert.NoError(t, err)
}

func TestCommands_NotARepository(t *testing.T) {
	th := NewTestHelper(t)

	for _, args := range [][]string{
		{"cat-file", "-t", helloDigest},
		{"write-tree"},
		{"count-objects"},
	} {
		_, err := th.Run(args...)
		assert.ErrorIs(t, err, errNotARepository, strings.Join(args, " "))
	}
}

func TestHashObjectCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("hello.txt", "hello\n")

	assert.Equal(t, helloDigest, th.MustRun("hash-object", "hello.txt"))

	_, err := th.Run("cat-file", "-e", helloDigest)
	assert.Error(t, err, "hash-object without -w must not store")

	assert.Equal(t, helloDigest, th.MustRun("hash-object", "-w", "hello.txt"))
	th.MustRun("cat-file", "-e", helloDigest)

	out, err := th.RunWithInput("hello\n", "hash-object", "--stdin")
	require.NoError(t, err)
	assert.Equal(t, helloDigest, strings.TrimSpace(out))
}

func TestHashObjectCommand_Kinds(t *testing.T) {
	th := NewTestHelper(t)

	out, err := th.RunWithInput("", "hash-object", "-t", "tree", "--stdin")
	require.NoError(t, err)
	assert.Equal(t, emptyTreeDigest, strings.TrimSpace(out))

	_, err = th.RunWithInput("not a commit", "hash-object", "-t", "commit", "--stdin")
	assert.Error(t, err)

	_, err = th.RunWithInput("x", "hash-object", "-t", "note", "--stdin")
	assert.Error(t, err)
}

func TestCatFileCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("hello.txt", "hello\n")
	th.MustRun("hash-object", "-w", "hello.txt")

	assert.Equal(t, "blob", th.MustRun("cat-file", "-t", helloDigest))
	assert.Equal(t, "6", th.MustRun("cat-file", "-s", helloDigest))

	out, err := th.Run("cat-file", "-p", helloDigest)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	out, err = th.Run("cat-file", "blob", strings.ToUpper(helloDigest))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, err = th.Run("cat-file", "tree", helloDigest)
	assert.Error(t, err, "kind mismatch")

	_, err = th.Run("cat-file", helloDigest)
	assert.Error(t, err, "no mode given")

	_, err = th.Run("cat-file", "-t", "-s", helloDigest)
	assert.Error(t, err, "exclusive flags")

	_, err = th.Run("cat-file", "-t", "xyz")
	assert.Error(t, err)

	_, err = th.Run("cat-file", "-e", strings.Repeat("0", 40))
	assert.Error(t, err)
}

func TestWriteTreeAndLsTree(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "hello\n")
	th.WriteFile("dir/b.txt", "bee\n")

	treeHash := th.MustRun("write-tree")
	require.Len(t, treeHash, 40)

	// Writing the same tree twice yields the same digest.
	assert.Equal(t, treeHash, th.MustRun("write-tree"))

	lines := strings.Split(th.MustRun("ls-tree", treeHash), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "100644 blob "+helloDigest+"\ta.txt", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "040000 tree "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "\tdir"), lines[1])

	assert.Equal(t, "a.txt\ndir/b.txt", th.MustRun("ls-tree", "-r", "--name-only", treeHash))

	pretty := th.MustRun("cat-file", "-p", treeHash)
	assert.Equal(t, strings.Join(lines, "\n"), pretty)

	subHash := th.MustRun("write-tree", "dir")
	assert.Contains(t, lines[1], subHash)

	table := th.MustRun("ls-tree", "--table", treeHash)
	assert.Contains(t, table, "a.txt")
}

func TestWriteTree_IgnoreFile(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile(".sourceignore", "*.log\nbuild/\n")
	th.WriteFile("main.go", "package main\n")
	th.WriteFile("debug.log", "noise\n")
	th.WriteFile("build/out.bin", "bin\n")

	treeHash := th.MustRun("write-tree")
	assert.Equal(t, ".sourceignore\nmain.go", th.MustRun("ls-tree", "--name-only", treeHash))
}

func TestWriteTree_EmptyDirectory(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()

	assert.Equal(t, emptyTreeDigest, th.MustRun("write-tree"))
}

func TestCommitTreeCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "hello\n")
	treeHash := th.MustRun("write-tree")

	first := th.MustRun("commit-tree", treeHash, "-m", "first")
	assert.Equal(t, "commit", th.MustRun("cat-file", "-t", first))

	body := th.MustRun("cat-file", "-p", first)
	assert.Contains(t, body, "tree "+treeHash+"\n")
	assert.Contains(t, body, "author Test User <test@example.com> 1700000000 +0000\n")
	assert.Contains(t, body, "committer Test User <test@example.com> 1700000000 +0000\n")
	assert.True(t, strings.HasSuffix(body, "\n\nfirst"), body)

	// Same inputs, same digest.
	assert.Equal(t, first, th.MustRun("commit-tree", treeHash, "-m", "first"))

	second := th.MustRun("commit-tree", treeHash, "-p", first, "-m", "second")
	assert.Contains(t, th.MustRun("cat-file", "-p", second), "parent "+first+"\n")

	lsOut := th.MustRun("ls-tree", second)
	assert.Contains(t, lsOut, "a.txt")

	_, err := th.Run("commit-tree", treeHash, "-p", treeHash, "-m", "bad parent")
	assert.Error(t, err, "parent must be a commit")

	// A commit stands in for its tree.
	fromCommit := th.MustRun("commit-tree", first, "-m", "from commit")
	assert.Contains(t, th.MustRun("cat-file", "-p", fromCommit), "tree "+treeHash+"\n")

	_, err = th.Run("commit-tree", helloDigestOf(t, th), "-m", "not a tree")
	assert.Error(t, err)

	_, err = th.Run("commit-tree", treeHash)
	assert.Error(t, err, "message required")
}

func TestCommitTreeCommand_PeelsTags(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "hello\n")
	treeHash := th.MustRun("write-tree")
	first := th.MustRun("commit-tree", treeHash, "-m", "first")

	th.MustRun("mktag", first, "-n", "v1", "-m", "release", "--create-ref")
	th.MustRun("mktag", treeHash, "-n", "snapshot", "--create-ref")

	child := th.MustRun("commit-tree", "snapshot", "-p", "v1", "-m", "second")
	body := th.MustRun("cat-file", "-p", child)
	assert.Contains(t, body, "tree "+treeHash+"\n")
	assert.Contains(t, body, "parent "+first+"\n")

	_, err := th.Run("commit-tree", treeHash, "-p", "snapshot", "-m", "tag of a tree is not a parent")
	assert.Error(t, err)
}

func TestCommitTreeCommand_RejectsHeaderInjection(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	treeHash := th.MustRun("write-tree")

	before := th.MustRun("count-objects")

	t.Setenv("SRCO_AUTHOR_NAME", "x\nparent "+strings.Repeat("a", 40))
	_, err := th.Run("commit-tree", treeHash, "-m", "forged")
	assert.Error(t, err)

	assert.Equal(t, before, th.MustRun("count-objects"), "nothing may be written")
}

func TestCommitTreeCommand_Committer(t *testing.T) {
	th := NewTestHelper(t)
	t.Setenv("SRCO_COMMITTER_NAME", "Other Person")
	t.Setenv("SRCO_COMMITTER_DATE", "2024-01-02T03:04:05+01:00")
	th.InitRepo()
	treeHash := th.MustRun("write-tree")

	hash := th.MustRun("commit-tree", treeHash, "-m", "msg")
	body := th.MustRun("cat-file", "-p", hash)
	assert.Contains(t, body, "committer Other Person <test@example.com> 1704161045 +0100\n")
}

func TestMktagCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "hello\n")
	treeHash := th.MustRun("write-tree")
	commitHash := th.MustRun("commit-tree", treeHash, "-m", "first")

	tagHash := th.MustRun("mktag", commitHash, "-n", "v1.0", "-m", "release")
	assert.Equal(t, "tag", th.MustRun("cat-file", "-t", tagHash))

	body := th.MustRun("cat-file", "-p", tagHash)
	assert.Contains(t, body, "object "+commitHash+"\n")
	assert.Contains(t, body, "type commit\n")
	assert.Contains(t, body, "tag v1.0\n")
	assert.Contains(t, body, "tagger Test User <test@example.com> 1700000000 +0000\n")

	// ls-tree peels the tag through the commit to its tree.
	assert.Equal(t, "a.txt", th.MustRun("ls-tree", "--name-only", tagHash))

	untagged := th.MustRun("mktag", helloDigestOf(t, th), "-n", "blob-tag", "--no-tagger")
	assert.NotContains(t, th.MustRun("cat-file", "-p", untagged), "tagger")

	_, err := th.Run("mktag", commitHash)
	assert.Error(t, err, "name required")

	_, err = th.Run("mktag", strings.Repeat("1", 40), "-n", "missing")
	assert.Error(t, err, "target must exist")
}

func helloDigestOf(t *testing.T, th *TestHelper) string {
	t.Helper()
	return th.MustRun("hash-object", "-w", "a.txt")
}

func TestShowCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	th.WriteFile("a.txt", "hello\n")
	treeHash := th.MustRun("write-tree")
	commitHash := th.MustRun("commit-tree", treeHash, "-m", "first commit")

	out := th.MustRun("show", commitHash)
	assert.Contains(t, out, "first commit")
	assert.Contains(t, out, "Test User")

	assert.Contains(t, th.MustRun("show", treeHash), "a.txt")
	assert.Equal(t, "hello", th.MustRun("show", helloDigest))
}

func TestCountObjectsCommand(t *testing.T) {
	th := NewTestHelper(t)
	th.InitRepo()
	assert.Equal(t, "0 objects", th.MustRun("count-objects"))

	th.WriteFile("a.txt", "hello\n")
	th.WriteFile("b.txt", "hello\n")
	th.MustRun("write-tree")

	// One shared blob and the root tree.
	assert.Equal(t, "2 objects", th.MustRun("count-objects"))
}

func TestConfigCommand(t *testing.T) {
	th := NewTestHelper(t)

	assert.Equal(t, "-1", th.MustRun("config", "get", "core.compression"))
	assert.Equal(t, "9", th.MustRun("-c", "core.compression=9", "config", "get", "core.compression"))

	t.Setenv("SRCO_BUILD_PARALLELISM", "2")
	assert.Equal(t, "2", th.MustRun("config", "get", "build.parallelism"))

	th.InitRepo()
	list := th.MustRun("config", "list")
	assert.Contains(t, list, "core.repositoryformatversion=0")
	assert.Contains(t, list, "build.parallelism=2")

	table := th.MustRun("config", "list", "--table")
	assert.Contains(t, table, "environment")

	_, err := th.Run("config", "get", "core.nope")
	assert.Error(t, err)

	_, err = th.Run("-c", "core.compression=42", "config", "get", "core.compression")
	assert.Error(t, err, "out of range values are rejected")

	_, err = th.Run("-c", "novalue", "count-objects")
	assert.Error(t, err)
}

func TestGlobalFlags_InvalidLogLevel(t *testing.T) {
	th := NewTestHelper(t)

	_, err := th.Run("--log-level", "loud", "config", "list")
	assert.Error(t, err)
}

func TestInitCommand_KeepsExistingIgnoreFile(t *testing.T) {
	th := NewTestHelper(t)
	th.WriteFile(".sourceignore", "custom\n")

	out := th.MustRun("init", "--ignore-template")
	assert.Contains(t, out, "kept existing .sourceignore")

	data, err := os.ReadFile(filepath.Join(th.Dir(), ".sourceignore"))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}
