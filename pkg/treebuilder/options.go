package treebuilder

import (
	"log/slog"

	"github.com/spf13/afero"
)

// DefaultParallelism is the number of sibling directories built at once.
const DefaultParallelism = 4

// Matcher decides which paths are left out of a tree. Paths are slash
// separated and relative to the directory passed to BuildTree.
type Matcher interface {
	IsIgnored(path string, isDirectory bool) bool
}

// Option configures a TreeBuilder.
type Option func(*TreeBuilder)

// WithFs sets the filesystem the directory is read from. Defaults to the OS.
func WithFs(fs afero.Fs) Option {
	return func(tb *TreeBuilder) {
		tb.fs = fs
	}
}

// WithParallelism bounds how many sibling sub-directories are built
// concurrently. Values below 1 mean sequential.
func WithParallelism(n int) Option {
	return func(tb *TreeBuilder) {
		if n < 1 {
			n = 1
		}
		tb.parallelism = n
	}
}

// WithIgnore skips every path m reports as ignored.
func WithIgnore(m Matcher) Option {
	return func(tb *TreeBuilder) {
		tb.ignore = m
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(tb *TreeBuilder) {
		tb.log = l
	}
}

// WithFileMode controls whether execute bits are recorded. When trust is
// false every regular file is stored as 100644, as for core.filemode=false
// on filesystems that do not keep permission bits.
func WithFileMode(trust bool) Option {
	return func(tb *TreeBuilder) {
		tb.trustExec = trust
	}
}
