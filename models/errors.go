package models

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced at package boundaries. Wrap with fmt.Errorf and
// %w so callers can still errors.Is/errors.As against these.
var (
	// ErrNotFound is returned when a requested artifact does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists marks a store operation that found existing content
	// under the computed hash; not itself a failure (see StatusAlreadyExists).
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("internal error")

	// ErrFactoryNotRegistered is returned when no package record recognizes
	// an entity type tag.
	ErrFactoryNotRegistered = errors.New("factory not registered for entity type")

	// ErrCorrupted is returned when an artifact's recomputed hash does not
	// match the hash encoded in its reference.
	ErrCorrupted = errors.New("artifact corrupted: hash mismatch")

	// ErrTooManyValues is returned when a vector would exceed the maximum
	// encodable length (2^31 - 1 elements).
	ErrTooManyValues = errors.New("vector exceeds maximum encodable length")
)

// StatusErr wraps a Status with operational context, preserving it for
// errors.As while giving a human-readable message.
type StatusErr struct {
	Status Status
	Op     string
	Err    error
}

func (e *StatusErr) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (e *StatusErr) Unwrap() error { return e.Err }

// NewStatusErr constructs a StatusErr, useful at the entity handler boundary
// where callers expect a Status-shaped failure.
func NewStatusErr(op string, status Status, cause error) error {
	return &StatusErr{Status: status, Op: op, Err: cause}
}
