// Package apperrors defines the error taxonomy shared across the sync engine.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrTombstoned     = errors.New("record is tombstoned")
	ErrUnauthorized   = errors.New("remote rejected credentials")
	ErrPassAborted    = errors.New("sync pass aborted")
	ErrRetryExhausted = errors.New("retry attempts exhausted")
)

// MissingFieldError reports a required remote column absent from a payload
// after all legacy fallback keys have been tried.
type MissingFieldError struct {
	Entity string
	Key    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %q missing from payload", e.Entity, e.Key)
}

// CoercionError reports a payload value whose JSON type does not match the
// expected local type.
type CoercionError struct {
	Entity string
	Key    string
	Want   string
	Got    string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: field %q: expected %s, got %s", e.Entity, e.Key, e.Want, e.Got)
}

// TranslationError wraps a per-record translation failure with enough context
// to log and skip the record without aborting the sync pass.
type TranslationError struct {
	Entity string
	Field  string
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translate %s.%s: %s: %v", e.Entity, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("translate %s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// NewTranslationError wraps err as a TranslationError. If err is already a
// MissingFieldError or CoercionError the field name is taken from it.
func NewTranslationError(entity, field, reason string, err error) *TranslationError {
	var missing *MissingFieldError
	var coercion *CoercionError
	switch {
	case errors.As(err, &missing):
		field = missing.Key
	case errors.As(err, &coercion):
		field = coercion.Key
	}
	return &TranslationError{Entity: entity, Field: field, Reason: reason, Err: err}
}

// IsRecordLevel reports whether err is a per-record failure that should be
// logged and skipped rather than aborting the whole sync pass.
func IsRecordLevel(err error) bool {
	var missing *MissingFieldError
	var coercion *CoercionError
	var translation *TranslationError
	return errors.As(err, &missing) || errors.As(err, &coercion) || errors.As(err, &translation)
}
