package sourcerepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/utkarsh5026/srcobjects/pkg/common/err"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
)

// CodeNothingToCommit is raised when the working tree matches the parent's
// tree and empty commits were not allowed.
const CodeNothingToCommit = "NOTHING_TO_COMMIT"

// ErrNothingToCommit matches errors carrying CodeNothingToCommit.
var ErrNothingToCommit = err.Sentinel(CodeNothingToCommit)

// CommitOptions describes a commit of the whole working tree.
type CommitOptions struct {
	Message string
	Author  *commit.Person
	// Committer defaults to Author.
	Committer  *commit.Person
	AllowEmpty bool
}

// CommitResult reports what CommitWorkingTree wrote.
type CommitResult struct {
	Hash   objects.ObjectHash
	Commit *commit.Commit
	// Ref is the reference that was advanced: the branch HEAD names, or HEAD
	// itself when detached.
	Ref refs.RefPath
}

// CommitWorkingTree snapshots the working tree, records it as a commit whose
// parent is the current HEAD commit (none on an unborn branch) and advances
// the reference HEAD points at.
func (sr *SourceRepository) CommitWorkingTree(ctx context.Context, opts CommitOptions) (CommitResult, error) {
	if !sr.initialized {
		return CommitResult{}, fmt.Errorf("repository not initialized")
	}
	if strings.TrimSpace(opts.Message) == "" {
		return CommitResult{}, fmt.Errorf("commit message cannot be empty")
	}
	if opts.Author == nil {
		return CommitResult{}, fmt.Errorf("commit author is required")
	}
	committer := opts.Committer
	if committer == nil {
		committer = opts.Author
	}

	treeHash, e := sr.WriteTree(ctx, "")
	if e != nil {
		return CommitResult{}, e
	}

	target, e := sr.refs.Target(refs.RefHEAD)
	if e != nil {
		return CommitResult{}, e
	}

	var parents []string
	parent, e := sr.refs.ResolveToHash(target)
	switch {
	case errors.Is(e, refs.ErrRefNotFound):
	case e != nil:
		return CommitResult{}, e
	default:
		if !opts.AllowEmpty {
			prev, e := sr.readCommit(parent)
			if e != nil {
				return CommitResult{}, e
			}
			if prev.Tree == treeHash {
				return CommitResult{}, err.New("sourcerepo", CodeNothingToCommit, "commit",
					"working tree matches "+parent.Short().String(), nil)
			}
		}
		parents = append(parents, parent.String())
	}

	c, e := commit.NewCommitBuilder().
		Tree(treeHash.String()).
		Parents(parents...).
		Author(opts.Author).
		Committer(committer).
		Message(opts.Message).
		Build()
	if e != nil {
		return CommitResult{}, e
	}

	hash, e := sr.WriteObject(c)
	if e != nil {
		return CommitResult{}, e
	}
	if e := sr.refs.UpdateRef(target, hash); e != nil {
		return CommitResult{}, fmt.Errorf("commit %s written but %s not updated: %w", hash.Short(), target, e)
	}

	sr.log.Info("committed", "hash", hash.String(), "ref", target.String(), "tree", treeHash.String())
	return CommitResult{Hash: hash, Commit: c, Ref: target}, nil
}
