package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

func newWriteTreeCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree [dir]",
		Short: "Snapshot a directory as a tree object",
		Long: `Store every file below dir (default: the current directory) as blobs and
trees and print the digest of the top tree.

File modes are recorded as 100644, 100755 (any execute bit), 120000
(symbolic link) or 040000 (directory). With core.filemode=false execute
bits are ignored and every regular file is 100644. The .source directory and paths
matched by the ignore file in dir are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := opts.resolvePath(dir)
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(repo.WorkingDirectory().String(), absDir)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", dir, err)
			}
			relPath := scpath.RelativePath(filepath.ToSlash(rel)).Normalize()

			hash, err := repo.WriteTree(cmd.Context(), relPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	return cmd
}
