package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash represents a SHA-1 hash of an object (40-character lowercase hex string)
// Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
type ObjectHash string

// ShortHash represents an abbreviated hash (typically 7 characters)
type ShortHash string

// RawHash is the binary form of a digest, as embedded in tree payloads.
type RawHash [20]byte

const (
	// HashLength is the length of a full SHA-1 hash in hex (40 characters)
	HashLength = 40
	// ShortHashLength is the default length for abbreviated hashes (7 characters)
	ShortHashLength = 7
	// RawHashLength is the length of a SHA-1 hash in bytes (20 bytes)
	RawHashLength = 20
)

// ZeroHash returns an all-zero hash
func ZeroHash() ObjectHash {
	return ObjectHash(strings.Repeat("0", HashLength))
}

// NewObjectHashFromString parses a 40-character hex digest. Upper-case input is
// normalized to lower case.
func NewObjectHashFromString(s string) (ObjectHash, error) {
	hash := ObjectHash(strings.ToLower(s))
	if e := hash.Validate(); e != nil {
		return "", e
	}
	return hash, nil
}

// NewRawHashFromBytes copies a 20-byte digest.
func NewRawHashFromBytes(b []byte) (RawHash, error) {
	var raw RawHash
	if len(b) != RawHashLength {
		return raw, newError(CodeMalformedHash, "raw hash",
			fmt.Sprintf("expected %d bytes, got %d", RawHashLength, len(b)), nil)
	}
	copy(raw[:], b)
	return raw, nil
}

// String returns the hash as a string
func (h ObjectHash) String() string {
	return string(h)
}

// Validate checks length and alphabet.
func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return newError(CodeMalformedHash, "parse hash",
			fmt.Sprintf("hash must be %d characters long, got %d", HashLength, len(h)), nil)
	}

	for _, c := range h {
		if !isHexChar(c) {
			return newError(CodeMalformedHash, "parse hash",
				fmt.Sprintf("hash must contain only hex characters, found %q", c), nil)
		}
	}

	return nil
}

// IsValid returns true if this is a valid SHA-1 hash
func (h ObjectHash) IsValid() bool {
	return h.Validate() == nil
}

// IsZero returns true if this is the zero hash
func (h ObjectHash) IsZero() bool {
	return h == ZeroHash()
}

// Short returns the abbreviated version of the hash
func (h ObjectHash) Short() ShortHash {
	if len(h) >= ShortHashLength {
		return ShortHash(h[:ShortHashLength])
	}
	return ShortHash(h)
}

// Raw decodes the hex digest into its 20-byte form.
func (h ObjectHash) Raw() (RawHash, error) {
	if e := h.Validate(); e != nil {
		return RawHash{}, e
	}

	var raw RawHash
	if _, e := hex.Decode(raw[:], []byte(h)); e != nil {
		return RawHash{}, newError(CodeMalformedHash, "decode hash", "", e)
	}
	return raw, nil
}

// StoragePath splits the digest into its object directory (first two characters)
// and file name (remaining 38). It performs no I/O and no validation.
func (h ObjectHash) StoragePath() (dir, file string) {
	if len(h) < 2 {
		return string(h), ""
	}
	return string(h[:2]), string(h[2:])
}

// Equal compares two hashes for equality (case-insensitive)
func (h ObjectHash) Equal(other ObjectHash) bool {
	return strings.EqualFold(string(h), string(other))
}

// String returns the short hash as a string
func (sh ShortHash) String() string {
	return string(sh)
}

// Hash converts RawHash to ObjectHash
func (rh RawHash) Hash() ObjectHash {
	return ObjectHash(hex.EncodeToString(rh[:]))
}

// Bytes returns a copy of the digest bytes.
func (rh RawHash) Bytes() []byte {
	b := make([]byte, RawHashLength)
	copy(b, rh[:])
	return b
}

// String returns the hash as a hex string
func (rh RawHash) String() string {
	return hex.EncodeToString(rh[:])
}

// IsZero returns true if this is a zero hash
func (rh RawHash) IsZero() bool {
	return rh == RawHash{}
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ComputeHash computes the SHA-1 hash of the given data
func ComputeHash(data []byte) RawHash {
	return sha1.Sum(data)
}

// ComputeObjectHash hashes the envelope "<kind> <size>\0<payload>".
func ComputeObjectHash(objType ObjectType, content ObjectContent) ObjectHash {
	return ComputeHash(EncodeEnvelope(objType, content)).Hash()
}
