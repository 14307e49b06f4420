package scpath

import "path/filepath"

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// IsValid checks if this is a valid source path
func (sp SourcePath) IsValid() bool {
	return len(sp) > 0
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	return SourcePath(filepath.Join(append([]string{string(sp)}, elem...)...))
}

// Dir returns all but the last element of the path
func (sp SourcePath) Dir() SourcePath {
	return SourcePath(filepath.Dir(string(sp)))
}

// ObjectsPath returns the path to the objects directory
func (sp SourcePath) ObjectsPath() SourcePath {
	return sp.Join(ObjectsDir)
}

// RefsPath returns the path to the refs directory
func (sp SourcePath) RefsPath() SourcePath {
	return sp.Join(RefsDir)
}

// HeadsPath returns the path to refs/heads
func (sp SourcePath) HeadsPath() SourcePath {
	return sp.Join(RefsDir, HeadsDir)
}

// TagsPath returns the path to refs/tags
func (sp SourcePath) TagsPath() SourcePath {
	return sp.Join(RefsDir, TagsDir)
}

// HeadPath returns the path to the HEAD file
func (sp SourcePath) HeadPath() SourcePath {
	return sp.Join(HeadFile)
}

// ConfigPath returns the path to the config file
func (sp SourcePath) ConfigPath() SourcePath {
	return sp.Join(ConfigFile)
}

// DescriptionPath returns the path to the description file
func (sp SourcePath) DescriptionPath() SourcePath {
	return sp.Join(DescriptionFile)
}

// ObjectFilePath returns the file for hash below this objects directory, or ""
// when hash is not a 40-character hex digest.
// Example: hash "abcdef..." returns "<objects>/ab/cdef..."
func (sp SourcePath) ObjectFilePath(hash string) SourcePath {
	op, err := NewObjectPath(hash)
	if err != nil {
		return ""
	}
	return op.ToSourcePath(sp)
}
