package scpath

import "fmt"

// String returns the object path as a string
func (op ObjectPath) String() string {
	return string(op)
}

// Prefix returns the 2-character directory name
func (op ObjectPath) Prefix() string {
	if len(op) < 2 {
		return ""
	}
	return string(op[:2])
}

// Suffix returns the 38-character file name
func (op ObjectPath) Suffix() string {
	if len(op) < 4 {
		return ""
	}
	return string(op[3:])
}

// Hash reassembles the full digest
func (op ObjectPath) Hash() string {
	return op.Prefix() + op.Suffix()
}

// ToSourcePath places the object below objectsDir
func (op ObjectPath) ToSourcePath(objectsDir SourcePath) SourcePath {
	return objectsDir.Join(op.Prefix(), op.Suffix())
}

// NewObjectPath creates an ObjectPath from a hash
func NewObjectPath(hash string) (ObjectPath, error) {
	if len(hash) != 40 {
		return "", fmt.Errorf("hash must be 40 characters, got %d", len(hash))
	}
	if !isHexString(hash) {
		return "", fmt.Errorf("hash must be hex string")
	}
	return ObjectPath(hash[:2] + "/" + hash[2:]), nil
}
