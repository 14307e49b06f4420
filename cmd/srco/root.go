package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	verbose   bool
	workDir   string
	overrides []string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "srco",
		Short: "srco - content-addressed object store for source trees",
		Long: `srco stores files, directory snapshots, commits and tags as immutable
objects named by the SHA-1 digest of their contents.

  Get started with:  srco init
  Snapshot a tree:   srco write-tree
  Inspect objects:   srco cat-file -p <hash>`,
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")
	flags.StringVarP(&opts.workDir, "work-dir", "C", "", "Run as if started in this directory")
	flags.StringArrayVarP(&opts.overrides, "config", "c", nil, "Override a configuration value (key=value)")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newHashObjectCmd(opts),
		newCatFileCmd(opts),
		newWriteTreeCmd(opts),
		newLsTreeCmd(opts),
		newCommitTreeCmd(opts),
		newCommitCmd(opts),
		newLogCmd(opts),
		newMktagCmd(opts),
		newCountObjectsCmd(opts),
		newShowCmd(opts),
		newUpdateRefCmd(opts),
		newShowRefCmd(opts),
		newRevParseCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}

func (o *globalOptions) setupLogging() error {
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logger.LevelDebug
	}

	format, err := logger.ParseFormat(o.logFormat)
	if err != nil {
		return err
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
	return nil
}

// configOverrides turns repeated -c key=value flags into a map.
func (o *globalOptions) configOverrides() (map[string]any, error) {
	if len(o.overrides) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(o.overrides))
	for _, kv := range o.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid config override %q, expected key=value", kv)
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return out, nil
}
