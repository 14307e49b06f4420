package sourcerepo

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
)

func testAuthor(t *testing.T) *commit.Person {
	t.Helper()
	p, err := commit.NewPerson("Test User", "test@example.com", time.Unix(1700000000, 0).UTC())
	require.NoError(t, err)
	return p
}

func commitFile(t *testing.T, repo *SourceRepository, fs afero.Fs, name, content, msg string) CommitResult {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, testRepoPath.Join(name), []byte(content), 0o644))
	res, err := repo.CommitWorkingTree(context.Background(), CommitOptions{Message: msg, Author: testAuthor(t)})
	require.NoError(t, err)
	return res
}

func TestSourceRepository_CommitWorkingTree(t *testing.T) {
	repo, fs := newTestRepo(t)

	first := commitFile(t, repo, fs, "a.txt", "one\n", "first\n")
	assert.Equal(t, refs.DefaultBranch, first.Ref)
	assert.True(t, first.Commit.IsInitialCommit())

	head, err := repo.ResolveName("HEAD")
	require.NoError(t, err)
	assert.Equal(t, first.Hash, head)

	second := commitFile(t, repo, fs, "b.txt", "two\n", "second\n")
	assert.Equal(t, []objects.ObjectHash{first.Hash}, second.Commit.Parents)
	assert.Equal(t, second.Commit.Author, second.Commit.Committer)

	head, err = repo.ResolveName("master")
	require.NoError(t, err)
	assert.Equal(t, second.Hash, head)
}

func TestSourceRepository_CommitWorkingTree_NothingToCommit(t *testing.T) {
	repo, fs := newTestRepo(t)
	first := commitFile(t, repo, fs, "a.txt", "one\n", "first\n")

	_, err := repo.CommitWorkingTree(context.Background(), CommitOptions{Message: "again\n", Author: testAuthor(t)})
	assert.ErrorIs(t, err, ErrNothingToCommit)

	res, err := repo.CommitWorkingTree(context.Background(), CommitOptions{
		Message:    "again\n",
		Author:     testAuthor(t),
		AllowEmpty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.Commit.Tree, res.Commit.Tree)
}

func TestSourceRepository_CommitWorkingTree_DetachedHead(t *testing.T) {
	repo, fs := newTestRepo(t)
	first := commitFile(t, repo, fs, "a.txt", "one\n", "first\n")
	require.NoError(t, repo.Refs().UpdateRef(refs.RefHEAD, first.Hash))

	second := commitFile(t, repo, fs, "b.txt", "two\n", "second\n")
	assert.Equal(t, refs.RefHEAD, second.Ref)

	branch, err := repo.ResolveName("master")
	require.NoError(t, err)
	assert.Equal(t, first.Hash, branch, "branch stays put while HEAD is detached")
}

func TestSourceRepository_CommitWorkingTree_Invalid(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.CommitWorkingTree(context.Background(), CommitOptions{Message: "  ", Author: testAuthor(t)})
	assert.ErrorContains(t, err, "message")

	_, err = repo.CommitWorkingTree(context.Background(), CommitOptions{Message: "msg"})
	assert.ErrorContains(t, err, "author")
}

func TestSourceRepository_History(t *testing.T) {
	repo, fs := newTestRepo(t)
	first := commitFile(t, repo, fs, "a.txt", "one\n", "first\n")
	second := commitFile(t, repo, fs, "b.txt", "two\n", "second\n")
	third := commitFile(t, repo, fs, "c.txt", "three\n", "third\n")

	history, err := repo.History(context.Background(), third.Hash, 0)
	require.NoError(t, err)

	var got []objects.ObjectHash
	for _, e := range history {
		got = append(got, e.Hash)
	}
	assert.Equal(t, []objects.ObjectHash{third.Hash, second.Hash, first.Hash}, got)
	assert.Equal(t, "first\n", history[2].Commit.Message)

	limited, err := repo.History(context.Background(), third.Hash, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	one, err := repo.History(context.Background(), third.Hash, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestSourceRepository_HistoryMerge(t *testing.T) {
	repo, fs := newTestRepo(t)
	base := commitFile(t, repo, fs, "a.txt", "one\n", "base\n")
	left := commitFile(t, repo, fs, "b.txt", "left\n", "left\n")

	// A side commit on top of base, then a merge of both.
	side, err := repo.WriteObject(&commit.Commit{
		Tree:      base.Commit.Tree,
		Parents:   []objects.ObjectHash{base.Hash},
		Author:    testAuthor(t).FormatForGit(),
		Committer: testAuthor(t).FormatForGit(),
		Message:   "side\n",
	})
	require.NoError(t, err)
	merge, err := repo.WriteObject(&commit.Commit{
		Tree:      left.Commit.Tree,
		Parents:   []objects.ObjectHash{left.Hash, side},
		Author:    testAuthor(t).FormatForGit(),
		Committer: testAuthor(t).FormatForGit(),
		Message:   "merge\n",
	})
	require.NoError(t, err)

	history, err := repo.History(context.Background(), merge, 0)
	require.NoError(t, err)

	var got []objects.ObjectHash
	for _, e := range history {
		got = append(got, e.Hash)
	}
	assert.Equal(t, []objects.ObjectHash{merge, left.Hash, side, base.Hash}, got, "base is listed once")
}

func TestSourceRepository_HistoryPeelsTags(t *testing.T) {
	repo, fs := newTestRepo(t)
	first := commitFile(t, repo, fs, "a.txt", "one\n", "first\n")

	tagHash, err := repo.WriteObject(&tag.Tag{
		Object:     first.Hash,
		ObjectType: objects.CommitType,
		Name:       "v1",
	})
	require.NoError(t, err)

	history, err := repo.History(context.Background(), tagHash, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.Hash, history[0].Hash)

	_, err = repo.History(context.Background(), first.Commit.Tree, 0)
	assert.ErrorContains(t, err, "not a commit")
}
