package config

import (
	"github.com/utkarsh5026/srcobjects/pkg/common/err"
)

const (
	pkgName = "config"

	CodeInvalidValue = "INVALID_CONFIG_VALUE"
	CodeInvalidLevel = "INVALID_LEVEL"
	CodeUnknownKey   = "UNKNOWN_KEY"
	CodeLoadFailed   = "CONFIG_LOAD_FAILED"
	CodeSaveFailed   = "CONFIG_SAVE_FAILED"
)

var (
	ErrInvalidValue = err.Sentinel(CodeInvalidValue)
	ErrUnknownKey   = err.Sentinel(CodeUnknownKey)
	ErrLoadFailed   = err.Sentinel(CodeLoadFailed)
)

func newError(code, op, message string, cause error) *err.Error {
	return err.New(pkgName, code, op, message, cause)
}

func invalidValue(key string, value any, reason string) error {
	return newError(CodeInvalidValue, "validate", reason, nil).
		WithContext("key", key).
		WithContext("value", value)
}
