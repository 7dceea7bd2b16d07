package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the submission store for unknown identifiers.
var ErrNotFound = errors.New("submission not found")

// ErrInvalidConfig marks configuration errors that must fail startup before
// any check runs.
var ErrInvalidConfig = errors.New("invalid configuration")

// InfraError marks a failure of tooling or environment rather than of the
// submission under test: subprocess launch errors, unreadable files,
// timeouts. The pipeline aborts remaining stages when it sees one, so
// callers never confuse "your code is wrong" with "our tooling is broken".
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

// Infra wraps err as an infrastructure failure of the given operation.
func Infra(op string, err error) error {
	return &InfraError{Op: op, Err: err}
}

// IsInfra reports whether err (or anything it wraps) is an InfraError.
func IsInfra(err error) bool {
	var ie *InfraError
	return errors.As(err, &ie)
}
