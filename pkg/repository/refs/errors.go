package refs

import (
	"github.com/utkarsh5026/srcobjects/pkg/common/err"
)

const (
	pkgName = "refs"

	CodeRefNotFound   = "REF_NOT_FOUND"
	CodeInvalidRef    = "INVALID_REF"
	CodeAmbiguousName = "AMBIGUOUS_NAME"
	CodeRefDepth      = "REF_DEPTH_EXCEEDED"
)

var (
	ErrRefNotFound   = err.Sentinel(CodeRefNotFound)
	ErrInvalidRef    = err.Sentinel(CodeInvalidRef)
	ErrAmbiguousName = err.Sentinel(CodeAmbiguousName)
)

func newError(code, op string, ref RefPath, message string, cause error) *err.Error {
	return err.New(pkgName, code, op, message, cause).WithContext("ref", ref.String())
}
