package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

func newCommitTreeCmd(opts *globalOptions) *cobra.Command {
	var (
		parents     []string
		message     string
		messageFile string
	)

	cmd := &cobra.Command{
		Use:   "commit-tree <tree> [-p <parent>]... (-m <message> | -F <file>)",
		Short: "Create a commit object for a tree",
		Long: `Create a commit recording tree with the given parents and message, and
print its digest.

The author is taken from SRCO_AUTHOR_NAME, SRCO_AUTHOR_EMAIL and
SRCO_AUTHOR_DATE; the committer from the matching SRCO_COMMITTER_*
variables, falling back to the author.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := commitMessage(message, messageFile, cmd.Flags().Changed("message"))
			if err != nil {
				return err
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			treeHash, err := requireKind(repo, args[0], objects.TreeType)
			if err != nil {
				return err
			}

			parentHashes := make([]string, 0, len(parents))
			for _, p := range parents {
				h, err := requireKind(repo, p, objects.CommitType)
				if err != nil {
					return err
				}
				parentHashes = append(parentHashes, h.String())
			}

			author, err := identityFromEnv("AUTHOR")
			if err != nil {
				return err
			}
			committer, err := identityFromEnv("COMMITTER")
			if err != nil {
				return err
			}

			c, err := commit.NewCommitBuilder().
				Tree(treeHash.String()).
				Parents(parentHashes...).
				Author(author).
				Committer(committer).
				Message(msg).
				Build()
			if err != nil {
				return err
			}

			hash, err := repo.WriteObject(c)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "Parent commit (repeatable)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVarP(&messageFile, "file", "F", "", "Read the commit message from a file")
	cmd.MarkFlagsMutuallyExclusive("message", "file")

	return cmd
}

func commitMessage(message, file string, messageSet bool) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		return string(data), nil
	case messageSet:
		return ensureTrailingNewline(message), nil
	default:
		return "", errors.New("a message is required (-m or -F)")
	}
}

func ensureTrailingNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}

// requireKind resolves arg to an object of kind. Annotated tags are peeled to
// their target, and a commit stands in for its root tree when a tree is wanted.
func requireKind(repo *sourcerepo.SourceRepository, arg string, kind objects.ObjectType) (objects.ObjectHash, error) {
	hash, err := repo.ResolveName(arg)
	if err != nil {
		return "", err
	}

	for range maxPeelDepth {
		got, content, err := repo.Store().ReadRaw(hash)
		if err != nil {
			return "", err
		}

		switch {
		case got == kind:
			return hash, nil
		case got == objects.TagType:
			var t tag.Tag
			if err := t.Deserialize(content); err != nil {
				return "", err
			}
			hash = t.Object
		case got == objects.CommitType && kind == objects.TreeType:
			var c commit.Commit
			if err := c.Deserialize(content); err != nil {
				return "", err
			}
			hash = c.Tree
		default:
			return "", fmt.Errorf("%s names a %s, not a %s", arg, got, kind)
		}
	}
	return "", fmt.Errorf("too many levels of tags resolving %s", arg)
}
