package store

import (
	"log/slog"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

// Option configures a FileObjectStore.
type Option func(*FileObjectStore)

// WithCompressionLevel sets the zlib level used for new object files (-1..9).
func WithCompressionLevel(level int) Option {
	return func(s *FileObjectStore) {
		s.level = level
	}
}

// WithVerify toggles the digest check on read.
func WithVerify(verify bool) Option {
	return func(s *FileObjectStore) {
		s.verify = verify
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileObjectStore) {
		s.log = l
	}
}

func defaultStore() FileObjectStore {
	return FileObjectStore{
		level:  objects.DefaultCompression,
		verify: true,
	}
}
