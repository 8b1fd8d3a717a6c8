package apiparser

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError. Use errors.Is to tell them apart.
var (
	ErrMalformedDirective   = errors.New("malformed directive")
	ErrMissingNameAttribute = errors.New("missing name attribute")
	ErrMissingTypeDirective = errors.New("missing type directive")
	ErrMissingType          = errors.New("missing type")
	ErrMissingName          = errors.New("missing name")
	ErrDuplicateConstructor = errors.New("duplicate constructor")
	ErrUnknownDirective     = errors.New("unknown directive")
	ErrUnterminatedElement  = errors.New("unterminated element")
	ErrIllegalDefault       = errors.New("illegal default on required parameter")
	ErrMisplacedElement     = errors.New("misplaced element")
)

// ParseError reports where and why an annotation body could not be parsed.
type ParseError struct {
	Err    error
	Line   int // 1-indexed
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(err error, line int, format string, args ...any) *ParseError {
	return &ParseError{Err: err, Line: line, Detail: fmt.Sprintf(format, args...)}
}
