package metrics

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is matched by errors returned when the metrics path does not exist.
var ErrSourceNotFound = errors.New("metrics file does not exist")

// ErrParse is matched by errors raised while scanning metrics text.
var ErrParse = errors.New("error parsing metrics file")

// ErrUnsupportedCheckType is returned when an engine has no dialect for a check type.
var ErrUnsupportedCheckType = errors.New("unsupported check type")

// SourceNotFoundError carries the metrics path that could not be found.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("metrics file does not exist at: %s", e.Path)
}

func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// ParseError wraps an unexpected failure while reading or scanning metrics text.
// The original message is preserved.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing metrics file: %v", e.Err)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
