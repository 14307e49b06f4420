package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

func newCommitCmd(opts *globalOptions) *cobra.Command {
	var (
		message     string
		messageFile string
		allowEmpty  bool
	)

	cmd := &cobra.Command{
		Use:   "commit (-m <message> | -F <file>) [--allow-empty]",
		Short: "Record the working tree as a new commit",
		Long: `Snapshot the whole working tree as write-tree does, create a commit whose
parent is the current HEAD commit and move the branch HEAD points at to it.
On an unborn branch the commit has no parent; with a detached HEAD, HEAD
itself is moved.

Identities come from the same SRCO_AUTHOR_* and SRCO_COMMITTER_* variables
as commit-tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := commitMessage(message, messageFile, cmd.Flags().Changed("message"))
			if err != nil {
				return err
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			author, err := identityFromEnv("AUTHOR")
			if err != nil {
				return err
			}
			committer, err := identityFromEnv("COMMITTER")
			if err != nil {
				return err
			}

			res, err := repo.CommitWorkingTree(cmd.Context(), sourcerepo.CommitOptions{
				Message:    msg,
				Author:     author,
				Committer:  committer,
				AllowEmpty: allowEmpty,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage(
				fmt.Sprintf("[%s %s]", res.Ref.ShortName(), res.Hash.Short()),
				subject(res.Commit.Message)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVarP(&messageFile, "file", "F", "", "Read the commit message from a file")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Commit even when the tree matches the parent's")
	cmd.MarkFlagsMutuallyExclusive("message", "file")

	return cmd
}
