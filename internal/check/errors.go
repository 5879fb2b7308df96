package check

import (
	"errors"
	"fmt"
)

// ErrCheckFailed is matched by every error a check returns.
var ErrCheckFailed = errors.New("compliance check failed")

// CheckError is the single error kind crossing the check boundary. The inner
// error is kept so callers can still test for metrics.ErrSourceNotFound,
// metrics.ErrParse or version.ErrComparison.
type CheckError struct {
	Err error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("compliance check failed: %v", e.Err)
}

func (e *CheckError) Is(target error) bool {
	return target == ErrCheckFailed
}

func (e *CheckError) Unwrap() error {
	return e.Err
}
