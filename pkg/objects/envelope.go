package objects

import (
	"bytes"
	"fmt"
	"strconv"
)

// ObjectContent is the kind-specific payload of an object, without the envelope.
// For a blob it is the file data, for a tree the binary entries, for a commit or tag
// the header lines and message.
type ObjectContent []byte

// SerializedObject is an object wrapped in its envelope:
// "<type> <size>\0<content>", e.g. "blob 12\0Hello World!"
type SerializedObject []byte

// ObjectSize represents the size of object content in bytes
type ObjectSize int64

// Bytes returns the underlying byte slice
func (oc ObjectContent) Bytes() []byte {
	return []byte(oc)
}

// String returns the content as a string
func (oc ObjectContent) String() string {
	return string(oc)
}

// Size returns the size of the content in bytes
func (oc ObjectContent) Size() ObjectSize {
	return ObjectSize(len(oc))
}

// IsEmpty returns true if the content is empty
func (oc ObjectContent) IsEmpty() bool {
	return len(oc) == 0
}

// EncodeEnvelope prefixes payload with "<kind> <decimal length>\0". The kind is
// written as given; callers pass one of the known ObjectType values.
func EncodeEnvelope(kind ObjectType, payload ObjectContent) SerializedObject {
	header := strconv.AppendInt([]byte(kind.String()+" "), int64(len(payload)), 10)
	out := make([]byte, 0, len(header)+1+len(payload))
	out = append(out, header...)
	out = append(out, NullByte)
	out = append(out, payload...)
	return SerializedObject(out)
}

// DecodeEnvelope splits an envelope into kind, declared length and payload.
//
// The kind is everything before the first space and is returned unvalidated. The
// length field runs up to the first NUL after that space and must be plain decimal
// digits matching the number of payload bytes.
func DecodeEnvelope(data []byte) (string, int64, ObjectContent, error) {
	spaceIndex := bytes.IndexByte(data, SpaceByte)
	if spaceIndex == -1 {
		return "", 0, nil, newError(CodeMalformedEnvelope, "decode envelope", "missing space after kind", nil)
	}

	nullIndex := bytes.IndexByte(data[spaceIndex+1:], NullByte)
	if nullIndex == -1 {
		return "", 0, nil, newError(CodeMalformedEnvelope, "decode envelope", "missing null byte after length", nil)
	}
	nullIndex += spaceIndex + 1

	kind := string(data[:spaceIndex])
	lengthField := data[spaceIndex+1 : nullIndex]
	if !isDecimal(lengthField) {
		return "", 0, nil, newError(CodeMalformedEnvelope, "decode envelope",
			fmt.Sprintf("invalid length field %q", lengthField), nil)
	}

	length, e := strconv.ParseInt(string(lengthField), 10, 64)
	if e != nil {
		return "", 0, nil, newError(CodeMalformedEnvelope, "decode envelope", "length out of range", e)
	}

	payload := data[nullIndex+1:]
	if int64(len(payload)) != length {
		return "", 0, nil, newError(CodeMalformedEnvelope, "decode envelope",
			fmt.Sprintf("length mismatch: header says %d, payload has %d", length, len(payload)), nil)
	}

	return kind, length, ObjectContent(payload), nil
}

func isDecimal(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Bytes returns the underlying byte slice
func (so SerializedObject) Bytes() []byte {
	return []byte(so)
}

// Size returns the size of the serialized object in bytes
func (so SerializedObject) Size() ObjectSize {
	return ObjectSize(len(so))
}

// ParseHeader decodes the envelope and resolves its kind. Kinds other than blob,
// tree, commit and tag fail with UNKNOWN_KIND.
func (so SerializedObject) ParseHeader() (ObjectType, ObjectSize, error) {
	kind, length, _, e := DecodeEnvelope(so)
	if e != nil {
		return "", 0, e
	}

	objType, e := ParseObjectType(kind)
	if e != nil {
		return "", 0, e
	}

	return objType, ObjectSize(length), nil
}

// Content extracts the payload from a well-formed envelope.
func (so SerializedObject) Content() (ObjectContent, error) {
	_, _, content, e := DecodeEnvelope(so)
	return content, e
}

// Hash returns the digest of the envelope.
func (so SerializedObject) Hash() ObjectHash {
	return ComputeHash(so).Hash()
}

// String returns a human-readable size string
func (s ObjectSize) String() string {
	return formatBytes(int64(s))
}

// formatBytes formats bytes into human-readable format (B, KiB, MiB, etc.)
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
