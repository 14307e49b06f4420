package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
)

func newUpdateRefCmd(opts *globalOptions) *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "update-ref <ref> <object> | update-ref -d <ref>",
		Short: "Point a reference at an object, or delete it",
		Long: `Write <ref> so it names <object>. The object may be given as a digest,
a unique digest prefix or another reference, and must exist.

<ref> is HEAD or a path below refs/, for example refs/heads/main.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if del {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			ref := refs.RefPath(args[0])
			if !ref.IsHEAD() && !ref.IsValid() {
				return fmt.Errorf("invalid reference name %q", args[0])
			}

			if del {
				removed, err := repo.Refs().DeleteRef(ref)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("reference %s does not exist", ref)
				}
				return nil
			}

			hash, err := repo.ResolveName(args[1])
			if err != nil {
				return err
			}
			if ok, err := repo.Store().HasObject(hash); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("object %s does not exist", hash)
			}

			return repo.Refs().UpdateRef(ref, hash)
		},
	}

	cmd.Flags().BoolVarP(&del, "delete", "d", false, "Delete the reference")
	return cmd
}

func newShowRefCmd(opts *globalOptions) *cobra.Command {
	var heads, tags bool

	cmd := &cobra.Command{
		Use:   "show-ref [--heads] [--tags]",
		Short: "List references with the digests they name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			var prefixes []refs.RefPath
			switch {
			case heads && tags:
				prefixes = []refs.RefPath{refs.RefHeads, refs.RefTags}
			case heads:
				prefixes = []refs.RefPath{refs.RefHeads}
			case tags:
				prefixes = []refs.RefPath{refs.RefTags}
			default:
				prefixes = []refs.RefPath{""}
			}

			out := cmd.OutOrStdout()
			found := 0
			for _, prefix := range prefixes {
				list, err := repo.Refs().List(prefix)
				if err != nil {
					return err
				}
				for _, r := range list {
					fmt.Fprintf(out, "%s %s\n", r.Hash, r.Name)
					found++
				}
			}
			if found == 0 {
				return errors.New("no references found")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&heads, "heads", false, "Only branches")
	cmd.Flags().BoolVar(&tags, "tags", false, "Only tags")
	return cmd
}

func newRevParseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rev-parse <name>...",
		Short: "Resolve names to object digests",
		Long: `Print the digest each name refers to. A name is a full digest, a
reference (HEAD, refs/heads/main, main, v1.0) or a unique digest prefix of at
least four characters.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range args {
				hash, err := repo.ResolveName(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, hash)
			}
			return nil
		},
	}
}
