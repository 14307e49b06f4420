package sourcerepo

import (
	"log/slog"

	"github.com/spf13/afero"
)

// Option configures a SourceRepository.
type Option func(*SourceRepository)

// WithFs sets the filesystem holding the working tree. Defaults to the OS.
func WithFs(fs afero.Fs) Option {
	return func(sr *SourceRepository) {
		sr.fs = fs
	}
}

// WithLogger sets the logger passed down to the store and tree builder.
func WithLogger(l *slog.Logger) Option {
	return func(sr *SourceRepository) {
		sr.log = l
	}
}

// WithConfigOverrides applies values on top of the file and environment, as
// command-line flags would.
func WithConfigOverrides(overrides map[string]any) Option {
	return func(sr *SourceRepository) {
		sr.overrides = overrides
	}
}
