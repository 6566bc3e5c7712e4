package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetNil is returned by [Decoder.Decode] when the target is nil.
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned by [Decoder.Decode] when the target is not
	// a pointer.
	ErrNonPointer = errors.New("target is not a pointer")
)

// ErrCannotCompare is returned by [Comparer.Compare] when the two values have
// no defined order, and by the parser when two bounds for the same field
// cannot be compared.
type ErrCannotCompare struct {
	A any
	B any
}

func (e ErrCannotCompare) Error() string {
	return fmt.Sprintf("cannot compare unexpected types %T and %T", e.A, e.B)
}

// ErrDecode is returned by [Decoder.Decode] to wrap third party decoding
// errors.
type ErrDecode struct {
	Source any
	Target any
	Err    error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T: %s", e.Source, e.Target, e.Err)
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrTemplateFormat is returned when a template document is malformed or
// written in an unsupported format.
type ErrTemplateFormat struct {
	Format string
	Reason string
}

func (e ErrTemplateFormat) Error() string {
	return fmt.Sprintf("invalid %s template: %s", e.Format, e.Reason)
}

// ErrResolve wraps an error returned by a [Resolver].
type ErrResolve struct {
	Name string
	Err  error
}

func (e ErrResolve) Error() string {
	return fmt.Sprintf("resolving %q: %s", e.Name, e.Err)
}

func (e ErrResolve) Unwrap() error { return e.Err }

// ErrPageFallback is returned when a parser is configured with a negative
// page fallback.
var ErrPageFallback = errors.New("page fallback must not be negative")
