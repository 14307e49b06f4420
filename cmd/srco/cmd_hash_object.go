package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/blob"
	"github.com/utkarsh5026/srcobjects/pkg/store"
)

func newHashObjectCmd(opts *globalOptions) *cobra.Command {
	var (
		kind      string
		write     bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-t kind] [-w] (--stdin | <file>)",
		Short: "Compute the object digest of a file",
		Long: `Compute the digest the file would have as an object of the given kind
and print it. With -w the object is also stored in the repository.

For kinds other than blob the content must already be a valid payload of
that kind; it is parsed before hashing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			objType, err := objects.ParseObjectType(kind)
			if err != nil {
				return err
			}

			var data []byte
			if fromStdin {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				var path string
				path, err = opts.resolvePath(args[0])
				if err == nil {
					data, err = os.ReadFile(path)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			var obj objects.BaseObject
			if objType == objects.BlobType {
				obj = blob.NewBlob(data)
			} else {
				obj, err = store.DecodeObject(objType, data)
				if err != nil {
					return err
				}
			}

			var hash objects.ObjectHash
			if write {
				repo, err := opts.openRepository()
				if err != nil {
					return err
				}
				hash, err = repo.WriteObject(obj)
				if err != nil {
					return err
				}
			} else {
				hash, err = objects.HashObject(obj)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(objects.BlobType), "Object kind (blob, tree, commit, tag)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Store the object in the repository")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the content from standard input")

	return cmd
}
