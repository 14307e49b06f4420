package ignore

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

const (
	NegationPrefix  = '!'
	DirectorySuffix = '/'
	RootedPrefix    = '/'
	CommentPrefix   = '#'
	DefaultSource   = scpath.IgnoreFile

	pathSeparator = '/'
)

// PatternConfig holds the parsed configuration of an ignore pattern
type PatternConfig struct {
	IsNegation     bool
	IsDirOnly      bool
	IsRooted       bool
	CleanedPattern string
}

// NewPatternConfig parses a pattern string and extracts its configuration.
//
// A pattern is rooted when it starts with "/" or has a "/" anywhere but at the
// end; a leading "**/" makes it match at any depth again.
func NewPatternConfig(pattern string) PatternConfig {
	var config PatternConfig

	if after, found := strings.CutPrefix(pattern, string(NegationPrefix)); found {
		config.IsNegation = true
		pattern = after
	}

	if before, found := strings.CutSuffix(pattern, string(DirectorySuffix)); found {
		config.IsDirOnly = true
		pattern = before
	}

	if after, found := strings.CutPrefix(pattern, string(RootedPrefix)); found {
		config.IsRooted = true
		pattern = after
	}

	if after, found := strings.CutPrefix(pattern, "**/"); found {
		pattern = after
	} else if strings.ContainsRune(pattern, pathSeparator) {
		config.IsRooted = true
	}

	config.CleanedPattern = pattern
	return config
}

// IgnorePattern represents a single line of a .sourceignore file.
//
// Pattern Rules:
//   - Blank lines and lines starting with # are comments
//   - Trailing spaces are ignored unless escaped with \
//   - ! prefix negates the pattern (re-includes files)
//   - / suffix matches only directories
//   - / prefix or an inner / anchors the pattern to the build root
//   - ** matches zero or more directories
//   - * and ? never match /
//   - [...] and {a,b} match character classes and alternatives
//
// Examples:
//
//	*.log            all .log files
//	build/           any directory named build
//	/TODO            TODO at the root only
//	**/temp          temp at any depth
//	!important.log   re-include important.log
//	docs/*.pdf       PDFs directly under docs
type IgnorePattern struct {
	Pattern         string
	OriginalPattern string
	IsNegation      bool
	IsDirOnly       bool
	IsRooted        bool
	Source          string
	LineNumber      int

	matcher glob.Glob
}

// NewIgnorePattern compiles pattern. source names the file it came from and is
// only used in messages.
func NewIgnorePattern(pattern, source string, lineNumber int) (*IgnorePattern, error) {
	if source == "" {
		source = DefaultSource
	}

	config := NewPatternConfig(pattern)
	if config.CleanedPattern == "" {
		return nil, fmt.Errorf("%s:%d: empty pattern %q", source, lineNumber, pattern)
	}

	matcher, err := glob.Compile(expandDoubleStar(config.CleanedPattern), pathSeparator)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: invalid pattern %q: %w", source, lineNumber, pattern, err)
	}

	return &IgnorePattern{
		Pattern:         config.CleanedPattern,
		OriginalPattern: pattern,
		IsNegation:      config.IsNegation,
		IsDirOnly:       config.IsDirOnly,
		IsRooted:        config.IsRooted,
		Source:          source,
		LineNumber:      lineNumber,
		matcher:         matcher,
	}, nil
}

// FromLine creates an IgnorePattern from a line of an ignore file.
// Returns nil, nil if the line is blank or a comment.
func FromLine(line, source string, lineNumber int) (*IgnorePattern, error) {
	line = trimTrailingWhitespace(strings.TrimSuffix(line, "\r"))

	if line == "" || line[0] == CommentPrefix {
		return nil, nil
	}

	return NewIgnorePattern(line, source, lineNumber)
}

// Matches reports whether the pattern selects filePath, a slash separated path
// relative to the build root. It does not look at parent directories.
func (ip *IgnorePattern) Matches(filePath string, isDirectory bool) bool {
	rp := scpath.RelativePath(filePath).Normalize()
	if rp == "" || !scpath.IsPathSafe(rp.String()) {
		return false
	}

	if ip.IsDirOnly && !isDirectory {
		return false
	}

	if ip.IsRooted {
		return ip.matcher.Match(rp.String())
	}

	// unanchored patterns match any trailing run of components
	components := rp.Components()
	for i := range components {
		if ip.matcher.Match(strings.Join(components[i:], "/")) {
			return true
		}
	}
	return false
}

// String returns the pattern as it was written.
func (ip *IgnorePattern) String() string {
	return ip.OriginalPattern
}

// expandDoubleStar lets an inner "/**/" also match a single separator, so
// "a/**/b" selects "a/b".
func expandDoubleStar(pattern string) string {
	return strings.ReplaceAll(pattern, "/**/", "{/,/**/}")
}

// trimTrailingWhitespace removes trailing whitespace unless escaped with backslash
func trimTrailingWhitespace(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == line {
		return line
	}

	backslashes := 0
	for i := len(trimmed) - 1; i >= 0 && trimmed[i] == '\\'; i-- {
		backslashes++
	}

	// an odd run of backslashes escapes the first trailing blank
	if backslashes%2 == 1 {
		return line[:len(trimmed)+1]
	}
	return trimmed
}
