package commit

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

// CommitBuilder assembles a Commit field by field and reports every invalid
// input at Build time.
type CommitBuilder struct {
	commit *Commit
	errs   []error
}

// NewCommitBuilder creates a new CommitBuilder
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{commit: &Commit{}}
}

// Tree sets the root tree digest.
func (b *CommitBuilder) Tree(hash string) *CommitBuilder {
	h, err := objects.NewObjectHashFromString(hash)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid tree digest: %w", err))
		return b
	}
	b.commit.Tree = h
	return b
}

// Parents appends parent digests in order.
func (b *CommitBuilder) Parents(hashes ...string) *CommitBuilder {
	for _, hash := range hashes {
		h, err := objects.NewObjectHashFromString(hash)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("invalid parent digest: %w", err))
			continue
		}
		b.commit.Parents = append(b.commit.Parents, h)
	}
	return b
}

// Author sets the author of the commit
func (b *CommitBuilder) Author(author *Person) *CommitBuilder {
	if author == nil {
		b.errs = append(b.errs, errors.New("author cannot be nil"))
		return b
	}
	b.commit.Author = author.FormatForGit()
	return b
}

// Committer sets the committer of the commit
func (b *CommitBuilder) Committer(committer *Person) *CommitBuilder {
	if committer == nil {
		b.errs = append(b.errs, errors.New("committer cannot be nil"))
		return b
	}
	b.commit.Committer = committer.FormatForGit()
	return b
}

// Message sets the commit message
func (b *CommitBuilder) Message(message string) *CommitBuilder {
	b.commit.Message = message
	return b
}

// Build returns the commit, or every recorded error joined together.
func (b *CommitBuilder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	if err := b.commit.Validate(); err != nil {
		return nil, err
	}

	return b.commit, nil
}
