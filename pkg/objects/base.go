package objects

import (
	"fmt"
)

// ObjectType represents the kind of a stored object
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
	TagType    ObjectType = "tag"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// String implements the Stringer interface
func (o ObjectType) String() string {
	return string(o)
}

// IsValid reports whether o is one of the four known kinds.
func (o ObjectType) IsValid() bool {
	switch o {
	case BlobType, TreeType, CommitType, TagType:
		return true
	}
	return false
}

// ParseObjectType converts a string to ObjectType
func ParseObjectType(s string) (ObjectType, error) {
	if ot := ObjectType(s); ot.IsValid() {
		return ot, nil
	}
	return "", newError(CodeUnknownKind, "parse kind", fmt.Sprintf("unknown object type %q", s), nil)
}

// BaseObject is implemented by the four object kinds: blob, tree, commit and tag.
//
// Objects carry no reference to a repository. Persistence goes through a store,
// which is also the only place that maps an ObjectType back to a concrete codec.
type BaseObject interface {
	// Type returns the object type
	Type() ObjectType

	// Serialize returns the kind-specific payload, without the envelope.
	Serialize() (ObjectContent, error)

	// Deserialize replaces the object's state with the decoded payload.
	Deserialize(data ObjectContent) error

	// String returns a human-readable representation
	String() string
}

// Envelope serializes obj and wraps the payload in its envelope.
func Envelope(obj BaseObject) (SerializedObject, error) {
	content, e := obj.Serialize()
	if e != nil {
		return nil, e
	}
	return EncodeEnvelope(obj.Type(), content), nil
}

// HashObject returns the digest obj would be stored under.
func HashObject(obj BaseObject) (ObjectHash, error) {
	env, e := Envelope(obj)
	if e != nil {
		return "", e
	}
	return ComputeHash(env).Hash(), nil
}
