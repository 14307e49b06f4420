package main

import (
	"fmt"
	"io"
	"path"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

// maxPeelDepth bounds tag chains followed when resolving a tree.
const maxPeelDepth = 16

type lsTreeRow struct {
	entry *tree.TreeEntry
	path  string
}

func newLsTreeCmd(opts *globalOptions) *cobra.Command {
	var recursive, asTable, nameOnly bool

	cmd := &cobra.Command{
		Use:   "ls-tree [-r] [--table] [--name-only] <tree-ish>",
		Short: "List the entries of a tree object",
		Long: `List the entries of a tree. A commit lists its root tree and a tag
lists whatever it points at.

Each line reads "<mode> <kind> <digest>TAB<path>". With -r sub-trees are
expanded and only their leaves are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			hash, err := repo.ResolveName(args[0])
			if err != nil {
				return err
			}

			root, err := resolveTree(repo, hash)
			if err != nil {
				return err
			}

			rows, err := collectTreeRows(repo, root, "", recursive)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case nameOnly:
				for _, r := range rows {
					fmt.Fprintln(out, r.path)
				}
			case asTable:
				return renderTreeTable(out, hash, rows)
			default:
				for _, r := range rows {
					fmt.Fprintf(out, "%s %s %s\t%s\n", r.entry.Mode(), r.entry.ObjectType(), r.entry.Hash(), r.path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into sub-trees")
	cmd.Flags().BoolVar(&asTable, "table", false, "Display entries in a table")
	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "Print paths only")

	return cmd
}

// resolveTree follows commits and tags until it reaches a tree.
func resolveTree(repo *sourcerepo.SourceRepository, hash objects.ObjectHash) (*tree.Tree, error) {
	for range maxPeelDepth {
		obj, err := repo.ReadObject(hash)
		if err != nil {
			return nil, err
		}

		switch o := obj.(type) {
		case *tree.Tree:
			return o, nil
		case *commit.Commit:
			hash = o.Tree
		case *tag.Tag:
			hash = o.Object
		default:
			return nil, fmt.Errorf("object %s is a %s, not a tree", hash, obj.Type())
		}
	}
	return nil, fmt.Errorf("too many levels of tags resolving %s", hash)
}

func collectTreeRows(repo *sourcerepo.SourceRepository, t *tree.Tree, prefix string, recursive bool) ([]lsTreeRow, error) {
	var rows []lsTreeRow
	for _, e := range t.Entries() {
		p := path.Join(prefix, e.Name())

		if recursive && e.IsDirectory() {
			obj, err := repo.ReadObject(e.Hash())
			if err != nil {
				return nil, err
			}
			sub, ok := obj.(*tree.Tree)
			if !ok {
				return nil, fmt.Errorf("entry %s points at a %s, not a tree", p, obj.Type())
			}
			subRows, err := collectTreeRows(repo, sub, p, recursive)
			if err != nil {
				return nil, err
			}
			rows = append(rows, subRows...)
			continue
		}

		rows = append(rows, lsTreeRow{entry: e, path: p})
	}
	return rows, nil
}

func renderTreeTable(w io.Writer, hash objects.ObjectHash, rows []lsTreeRow) error {
	fmt.Fprintln(w, ui.Header(" Tree "+hash.Short().String()+" "))

	table := tablewriter.NewWriter(w)
	table.Header("Mode", "Kind", "Object", "Path")
	for _, r := range rows {
		if err := table.Append(
			ui.Magenta(r.entry.Mode()),
			ui.Cyan(string(r.entry.ObjectType())),
			ui.Yellow(r.entry.Hash().Short().String()),
			r.path,
		); err != nil {
			return err
		}
	}
	return table.Render()
}
