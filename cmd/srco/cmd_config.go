package main

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/cmd/ui"
	"github.com/utkarsh5026/srcobjects/pkg/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show configuration values and where each came from. Values are read
from .source/config, then SRCO_* environment variables, then -c flags.`,
	}

	var asTable bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List every key with its value and origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asTable {
				for _, key := range config.Keys() {
					value, _ := cfg.Get(key)
					fmt.Fprintf(out, "%s=%s\n", key, value)
				}
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.Header("Key", "Value", "Origin")
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				if err := table.Append(ui.Cyan(key), value, ui.Magenta(cfg.Origin(key).String())); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	list.Flags().BoolVar(&asTable, "table", false, "Display values in a table with their origin")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEffectiveConfig(opts)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// loadEffectiveConfig reads the enclosing repository's configuration, or the
// builtin values plus environment and flags outside a repository.
func loadEffectiveConfig(opts *globalOptions) (*config.Config, error) {
	repo, err := opts.openRepository()
	if err == nil {
		return repo.Config(), nil
	}
	if !errors.Is(err, errNotARepository) {
		return nil, err
	}

	overrides, err := opts.configOverrides()
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{Fs: afero.NewOsFs(), Overrides: overrides})
}
