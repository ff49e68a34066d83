package internal

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an unknown subscription id
var ErrNotFound = errors.New("subscription not found")

// ValidationError is returned by add/update when a candidate record is invalid
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed read or write of a storage key
type PersistenceError struct {
	Key string
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ImportFormatError describes why a backup payload was rejected.
// Index is -1 when the problem is with the payload itself rather than an element.
type ImportFormatError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ImportFormatError) Error() string {
	if e.Index < 0 {
		if e.Field == "" {
			return "invalid backup file: " + e.Reason
		}
		return fmt.Sprintf("invalid backup file: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid backup file: subscriptions[%d].%s %s", e.Index, e.Field, e.Reason)
}
