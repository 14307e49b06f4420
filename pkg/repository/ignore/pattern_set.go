package ignore

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/srcobjects/pkg/common/fileops"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

// PatternSet is an ordered list of ignore patterns. When several patterns
// match a path the last one wins, so a later "!keep.log" re-includes a file an
// earlier "*.log" excluded.
type PatternSet struct {
	patterns []*IgnorePattern
}

// NewPatternSet creates a new empty pattern set
func NewPatternSet() *PatternSet {
	return &PatternSet{}
}

// Add appends a pattern to the set
func (ps *PatternSet) Add(pattern *IgnorePattern) {
	ps.patterns = append(ps.patterns, pattern)
}

// AddPatternsFromText parses text and adds all valid patterns to the set.
// Every invalid line is reported; valid lines are added regardless.
func (ps *PatternSet) AddPatternsFromText(text, source string) error {
	if source == "" {
		source = DefaultSource
	}

	var errs []error
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		pattern, err := FromLine(scanner.Text(), source, line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if pattern != nil {
			ps.Add(pattern)
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadFile reads an ignore file from fs. A missing file yields an empty set.
func LoadFile(fs afero.Fs, path string) (*PatternSet, error) {
	ps := NewPatternSet()

	data, err := fileops.ReadBytes(fs, path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return ps, nil
	}

	if err := ps.AddPatternsFromText(string(data), path); err != nil {
		return nil, err
	}
	return ps, nil
}

// IsIgnored reports whether filePath, relative to the build root, is excluded.
// A path inside an excluded directory is excluded no matter what later
// patterns say about the path itself.
func (ps *PatternSet) IsIgnored(filePath string, isDirectory bool) bool {
	if len(ps.patterns) == 0 {
		return false
	}

	rp := scpath.RelativePath(filePath).Normalize()
	components := rp.Components()
	for i := 1; i < len(components); i++ {
		if ps.decide(strings.Join(components[:i], "/"), true) {
			return true
		}
	}

	return ps.decide(rp.String(), isDirectory)
}

func (ps *PatternSet) decide(path string, isDirectory bool) bool {
	for i := len(ps.patterns) - 1; i >= 0; i-- {
		p := ps.patterns[i]
		if p.Matches(path, isDirectory) {
			return !p.IsNegation
		}
	}
	return false
}

// Len returns the number of patterns in the set
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// Clear removes all patterns from the set
func (ps *PatternSet) Clear() {
	ps.patterns = nil
}

// IgnoredPatterns returns all ignore patterns (non-negation patterns)
func (ps *PatternSet) IgnoredPatterns() []*IgnorePattern {
	return ps.filter(false)
}

// UnignoredPatterns returns all negation patterns (patterns that un-ignore files)
func (ps *PatternSet) UnignoredPatterns() []*IgnorePattern {
	return ps.filter(true)
}

func (ps *PatternSet) filter(negation bool) []*IgnorePattern {
	out := make([]*IgnorePattern, 0, len(ps.patterns))
	for _, p := range ps.patterns {
		if p.IsNegation == negation {
			out = append(out, p)
		}
	}
	return out
}
