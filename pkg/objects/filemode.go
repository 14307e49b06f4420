package objects

import (
	"fmt"
	"os"
	"strconv"
)

// FileMode is the mode recorded for a tree entry. The upper bits encode the entry
// type and the lower nine bits the permissions.
type FileMode uint32

const (
	FileModeTypeMask FileMode = 0xF000 // Upper 4 bits (bits 12-15)
	FileModePermMask FileMode = 0x01FF // Lower 9 bits (permissions)
	FileModeExecMask FileMode = 0x0049 // Execute bits (owner/group/other)

	FileModeTypeRegular FileMode = 0x8000
	FileModeTypeSymlink FileMode = 0xA000
	FileModeTypeGitlink FileMode = 0xE000
	FileModeTypeDir     FileMode = 0x4000

	FileModeRegular    FileMode = 0o100644 // Regular file, rw-r--r--
	FileModeExecutable FileMode = 0o100755 // Executable file, rwxr-xr-x
	FileModeSymlink    FileMode = 0o120000 // Symbolic link
	FileModeGitlink    FileMode = 0o160000 // Gitlink (submodule)
	FileModeDirectory  FileMode = 0o040000 // Directory (sub-tree)
)

// Type returns the file type portion of the mode.
func (m FileMode) Type() FileMode {
	return m & FileModeTypeMask
}

// IsRegular returns true for regular and executable files.
func (m FileMode) IsRegular() bool {
	return m.Type() == FileModeTypeRegular
}

// IsSymlink returns true if this is a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m.Type() == FileModeTypeSymlink
}

// IsDirectory returns true if this is a directory.
func (m FileMode) IsDirectory() bool {
	return m.Type() == FileModeTypeDir
}

// IsExecutable returns true if the file has execute permissions.
func (m FileMode) IsExecutable() bool {
	return m.IsRegular() && (m&FileModeExecMask) != 0
}

// String returns a human-readable representation of the file mode.
func (m FileMode) String() string {
	switch m.Type() {
	case FileModeTypeRegular:
		if m.IsExecutable() {
			return "executable"
		}
		return "file"
	case FileModeTypeSymlink:
		return "symlink"
	case FileModeTypeGitlink:
		return "gitlink"
	case FileModeTypeDir:
		return "directory"
	default:
		return fmt.Sprintf("unknown(%o)", uint32(m))
	}
}

// ToOctalString returns the mode as written in tree payloads ("100644", "040000").
func (m FileMode) ToOctalString() string {
	return fmt.Sprintf("%06o", uint32(m))
}

// FromOctalString parses a tree entry mode such as "100644" or "40000".
func FromOctalString(s string) (FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode string %q: %w", s, err)
	}
	return FileMode(mode), nil
}

// ClassifyFileMode maps a filesystem mode, as returned by Lstat, to a tree mode.
//
// Regular files are 100755 when any of the owner, group or other execute bits is
// set and 100644 otherwise. Devices, sockets, pipes and other irregular entries
// fail with UNSUPPORTED_ENTRY_KIND.
func ClassifyFileMode(mode os.FileMode) (FileMode, error) {
	switch {
	case mode&os.ModeSymlink != 0:
		return FileModeSymlink, nil
	case mode.IsDir():
		return FileModeDirectory, nil
	case mode.IsRegular():
		if mode&0o111 != 0 {
			return FileModeExecutable, nil
		}
		return FileModeRegular, nil
	default:
		return 0, newError(CodeUnsupportedEntryKind, "classify mode",
			fmt.Sprintf("unsupported file type %v", mode.Type()), nil)
	}
}
