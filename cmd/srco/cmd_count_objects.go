package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountObjectsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count-objects",
		Short: "Count the stored objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			n, err := repo.Store().ObjectCount()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d objects\n", n)
			return nil
		},
	}
}
