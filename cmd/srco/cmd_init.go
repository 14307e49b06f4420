package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var withIgnore bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Long: `Create an empty repository in the current directory or the given path.
This creates a .source directory holding objects/, refs/heads, refs/tags,
HEAD, config and description.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := opts.resolvePath(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}

			repoOpts, err := opts.repoOptions()
			if err != nil {
				return err
			}

			repo, err := sourcerepo.InitializeRepository(scpath.RepositoryPath(absPath), repoOpts...)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out,
				ui.SuccessMessage("Initialized empty repository in", repo.SourceDirectory().String()))

			if withIgnore {
				created, err := repo.WriteDefaultIgnore()
				if err != nil {
					return fmt.Errorf("failed to write ignore file: %w", err)
				}
				if !created {
					fmt.Fprintln(out, ui.WarningMessage("kept existing "+scpath.IgnoreFile))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withIgnore, "ignore-template", false, "Also write a starter "+scpath.IgnoreFile)

	return cmd
}
