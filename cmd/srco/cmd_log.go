package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
	"github.com/utkarsh5026/srcobjects/pkg/repository/sourcerepo"
)

const maxSubjectWidth = 50

func newLogCmd(opts *globalOptions) *cobra.Command {
	var (
		limit    int
		useTable bool
	)

	cmd := &cobra.Command{
		Use:   "log [<commit>]",
		Short: "Show commit history",
		Long: `Show the commits reachable from <commit> (default: HEAD) by following
parent links, newest first. Each commit is listed once, even when several
merges lead back to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			start := string(refs.RefHEAD)
			if len(args) > 0 {
				start = args[0]
			}

			hash, err := repo.ResolveName(start)
			if err != nil {
				if len(args) == 0 && errors.Is(err, refs.ErrRefNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.WarningMessage("No commits yet"))
					return nil
				}
				return err
			}

			history, err := repo.History(cmd.Context(), hash, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if useTable {
				return renderHistoryTable(out, history)
			}
			renderHistoryCards(out, history)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Limit the number of commits to show (0 for all)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")

	return cmd
}

func renderHistoryCards(w io.Writer, history []sourcerepo.HistoryEntry) {
	fmt.Fprintln(w, ui.Header(" Commit History "))
	for i, e := range history {
		fmt.Fprintln(w, ui.FormatObjectCard(commitCard(e.Hash, e.Commit)))
		if i < len(history)-1 {
			fmt.Fprintln(w, ui.Gray("  │"))
		}
	}
}

func renderHistoryTable(w io.Writer, history []sourcerepo.HistoryEntry) error {
	fmt.Fprintln(w, ui.Header(" Commit History "))

	table := tablewriter.NewWriter(w)
	table.Header("Commit", "Author", "Date", "Message")
	for _, e := range history {
		author, date := e.Commit.Author, ""
		if p, err := e.Commit.AuthorPerson(); err == nil {
			author = p.Name
			date = p.When.Format("2006-01-02 15:04")
		}

		if err := table.Append(
			ui.Yellow(e.Hash.Short().String()),
			ui.Cyan(author),
			ui.Magenta(date),
			subject(e.Commit.Message),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// subject is the first line of a message, shortened for a table cell.
func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	if len(line) > maxSubjectWidth {
		return line[:maxSubjectWidth-3] + "..."
	}
	return line
}
