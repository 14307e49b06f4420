package sourcerepo

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
)

// maxPeelDepth bounds chains of tags pointing at tags.
const maxPeelDepth = 16

// HistoryEntry is one commit reached while walking history.
type HistoryEntry struct {
	Hash   objects.ObjectHash
	Commit *commit.Commit
}

// History walks parent links breadth-first from start and returns at most
// limit commits, each once. A limit below 1 means the whole history. An
// annotated tag at start is peeled to the commit it names.
func (sr *SourceRepository) History(ctx context.Context, start objects.ObjectHash, limit int) ([]HistoryEntry, error) {
	if !sr.initialized {
		return nil, fmt.Errorf("repository not initialized")
	}

	head, first, err := sr.peelToCommit(start)
	if err != nil {
		return nil, err
	}

	var (
		history = []HistoryEntry{{Hash: head, Commit: first}}
		visited = map[objects.ObjectHash]bool{head: true}
		queue   = append([]objects.ObjectHash(nil), first.Parents...)
	)

	for len(queue) > 0 && (limit < 1 || len(history) < limit) {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		hash := queue[0]
		queue = queue[1:]
		if visited[hash] {
			continue
		}
		visited[hash] = true

		c, err := sr.readCommit(hash)
		if err != nil {
			return history, fmt.Errorf("walk history at %s: %w", hash.Short(), err)
		}
		history = append(history, HistoryEntry{Hash: hash, Commit: c})

		for _, parent := range c.Parents {
			if !visited[parent] {
				queue = append(queue, parent)
			}
		}
	}

	return history, nil
}

func (sr *SourceRepository) peelToCommit(hash objects.ObjectHash) (objects.ObjectHash, *commit.Commit, error) {
	for range maxPeelDepth {
		obj, err := sr.ReadObject(hash)
		if err != nil {
			return "", nil, err
		}

		switch o := obj.(type) {
		case *commit.Commit:
			return hash, o, nil
		case *tag.Tag:
			hash = o.Object
		default:
			return "", nil, fmt.Errorf("object %s is a %s, not a commit", hash, obj.Type())
		}
	}
	return "", nil, fmt.Errorf("too many levels of tags resolving %s", hash)
}

func (sr *SourceRepository) readCommit(hash objects.ObjectHash) (*commit.Commit, error) {
	obj, err := sr.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*commit.Commit)
	if !ok {
		return nil, fmt.Errorf("object %s is a %s, not a commit", hash, obj.Type())
	}
	return c, nil
}
