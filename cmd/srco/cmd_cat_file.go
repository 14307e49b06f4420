package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
	"github.com/utkarsh5026/srcobjects/pkg/store"
)

type catFileMode int

const (
	catRaw catFileMode = iota
	catType
	catSize
	catPretty
	catExists
)

func newCatFileCmd(opts *globalOptions) *cobra.Command {
	var showType, showSize, pretty, exists bool

	cmd := &cobra.Command{
		Use:   "cat-file (-t | -s | -p | -e) <object> | cat-file <kind> <object>",
		Short: "Show the kind, size or content of an object",
		Long: `Show information about a stored object.

  -t  print the kind
  -s  print the payload size in bytes
  -p  pretty-print the payload
  -e  exit with an error unless the object exists and is readable

With <kind> <object> the raw payload is written, provided the object is of
that kind.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, want, hashArg, err := catFileArgs(args, showType, showSize, pretty, exists)
			if err != nil {
				return err
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			hash, err := repo.ResolveName(hashArg)
			if err != nil {
				return err
			}

			kind, payload, err := repo.Store().ReadRaw(hash)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch mode {
			case catExists:
				return nil
			case catType:
				fmt.Fprintln(out, kind)
			case catSize:
				fmt.Fprintln(out, len(payload))
			case catPretty:
				return prettyPrint(out, kind, payload)
			default:
				if kind != want {
					return fmt.Errorf("object %s is a %s, not a %s", hash, kind, want)
				}
				_, err := out.Write(payload)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "Print the object kind")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "Print the payload size")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty-print the payload")
	cmd.Flags().BoolVarP(&exists, "exists", "e", false, "Only check that the object exists")
	cmd.MarkFlagsMutuallyExclusive("type", "size", "pretty", "exists")

	return cmd
}

func catFileArgs(args []string, showType, showSize, pretty, exists bool) (catFileMode, objects.ObjectType, string, error) {
	flagged := showType || showSize || pretty || exists

	if len(args) == 2 {
		if flagged {
			return 0, "", "", errors.New("a kind argument cannot be combined with -t, -s, -p or -e")
		}
		kind, err := objects.ParseObjectType(args[0])
		if err != nil {
			return 0, "", "", err
		}
		return catRaw, kind, args[1], nil
	}

	switch {
	case showType:
		return catType, "", args[0], nil
	case showSize:
		return catSize, "", args[0], nil
	case pretty:
		return catPretty, "", args[0], nil
	case exists:
		return catExists, "", args[0], nil
	default:
		return 0, "", "", errors.New("one of -t, -s, -p, -e or a kind is required")
	}
}

// prettyPrint renders trees as one line per entry and everything else as its
// payload text.
func prettyPrint(w io.Writer, kind objects.ObjectType, payload objects.ObjectContent) error {
	obj, err := store.DecodeObject(kind, payload)
	if err != nil {
		return err
	}

	t, ok := obj.(*tree.Tree)
	if !ok {
		_, err := w.Write(payload)
		return err
	}

	for _, e := range t.Entries() {
		fmt.Fprintf(w, "%s %s %s\t%s\n", e.Mode(), e.ObjectType(), e.Hash(), e.Name())
	}
	return nil
}
