package objects

import "github.com/utkarsh5026/srcobjects/pkg/common/err"

const pkgName = "objects"

// Error codes raised by the object layer.
const (
	CodeMalformedHash        = "MALFORMED_HASH"
	CodeMalformedEnvelope    = "MALFORMED_ENVELOPE"
	CodeMalformedTree        = "MALFORMED_TREE"
	CodeMalformedCommit      = "MALFORMED_COMMIT"
	CodeMissingCommitField   = "MISSING_COMMIT_FIELD"
	CodeMissingTagField      = "MISSING_TAG_FIELD"
	CodeUnknownKind          = "UNKNOWN_KIND"
	CodeObjectNotFound       = "OBJECT_NOT_FOUND"
	CodeCorruptObject        = "CORRUPT_OBJECT"
	CodeStorageWrite         = "STORAGE_WRITE"
	CodeUnsupportedEntryKind = "UNSUPPORTED_ENTRY_KIND"
)

// Sentinels for errors.Is. They carry only a code, so any *err.Error raised with the
// same code matches regardless of the package or operation that produced it.
var (
	ErrMalformedHash        = err.Sentinel(CodeMalformedHash)
	ErrMalformedEnvelope    = err.Sentinel(CodeMalformedEnvelope)
	ErrMalformedTree        = err.Sentinel(CodeMalformedTree)
	ErrMalformedCommit      = err.Sentinel(CodeMalformedCommit)
	ErrMissingCommitField   = err.Sentinel(CodeMissingCommitField)
	ErrMissingTagField      = err.Sentinel(CodeMissingTagField)
	ErrUnknownKind          = err.Sentinel(CodeUnknownKind)
	ErrObjectNotFound       = err.Sentinel(CodeObjectNotFound)
	ErrCorruptObject        = err.Sentinel(CodeCorruptObject)
	ErrStorageWrite         = err.Sentinel(CodeStorageWrite)
	ErrUnsupportedEntryKind = err.Sentinel(CodeUnsupportedEntryKind)
)

// NewError builds a coded error on behalf of package pkg.
func NewError(pkg, code, op, message string, cause error) *err.Error {
	return err.New(pkg, code, op, message, cause)
}

func newError(code, op, message string, cause error) *err.Error {
	return err.New(pkgName, code, op, message, cause)
}
