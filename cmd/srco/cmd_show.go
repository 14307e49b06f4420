package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/blob"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <hash>",
		Short: "Show an object in a human-friendly form",
		Long: `Show decodes an object and renders it for reading: commits and tags as a
summary card, trees as a table and blobs as their content.`,
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

			obj, err := repo.ReadObject(hash)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch o := obj.(type) {
			case *commit.Commit:
				fmt.Fprintln(out, ui.FormatObjectCard(commitCard(hash, o)))
			case *tag.Tag:
				fmt.Fprintln(out, ui.FormatObjectCard(tagCard(hash, o)))
			case *tree.Tree:
				rows, err := collectTreeRows(repo, o, "", false)
				if err != nil {
					return err
				}
				return renderTreeTable(out, hash, rows)
			case *blob.Blob:
				_, err := out.Write(o.Content())
				return err
			default:
				return fmt.Errorf("cannot show a %s", obj.Type())
			}
			return nil
		},
	}
}

func commitCard(hash objects.ObjectHash, c *commit.Commit) ui.ObjectCard {
	card := ui.ObjectCard{
		Hash:    hash.String(),
		Kind:    string(objects.CommitType),
		Target:  c.Tree.String(),
		Person:  c.Author,
		Message: c.Message,
	}
	for _, p := range c.Parents {
		card.Parents = append(card.Parents, p.String())
	}
	if author, err := c.AuthorPerson(); err == nil {
		card.Person = fmt.Sprintf("%s <%s>", author.Name, author.Email)
		card.Date = author.When.Format(time.RFC1123Z)
	}
	return card
}

func tagCard(hash objects.ObjectHash, t *tag.Tag) ui.ObjectCard {
	card := ui.ObjectCard{
		Hash:    hash.String(),
		Kind:    string(objects.TagType),
		Target:  fmt.Sprintf("%s %s (%s)", t.Name, t.Object, t.ObjectType),
		Person:  t.Tagger,
		Message: t.Message,
	}
	if tagger, err := commit.ParsePerson(t.Tagger); err == nil {
		card.Person = fmt.Sprintf("%s <%s>", tagger.Name, tagger.Email)
		card.Date = tagger.When.Format(time.RFC1123Z)
	}
	return card
}
