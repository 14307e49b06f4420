// Package err provides the coded error type shared by every package in the object layer.
//
// Each failure carries the package that raised it, a machine-readable code, the
// operation in progress and an optional wrapped cause. Two *Error values compare equal
// under errors.Is when their codes match, so packages export code-only sentinels:
//
//	var ErrObjectNotFound = err.Sentinel(CodeObjectNotFound)
//
//	if errors.Is(e, objects.ErrObjectNotFound) {
//	    // handle missing object
//	}
//
// Structured context can be attached for diagnostics:
//
//	e := err.New("store", CodeCorruptObject, "read", "digest mismatch", nil)
//	e.WithContext("hash", h.String())
//
// Codes use UPPER_SNAKE_CASE. The generic codes below are shared; the object layer's own
// taxonomy lives next to the code that raises it.
package err
