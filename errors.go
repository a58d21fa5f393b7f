package esconv

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument is returned when a registry is built from invalid input
var ErrInvalidArgument = errors.New("invalid argument")

// FormatError represents a store value that cannot be parsed into a domain type
type FormatError struct {
	Value string
	Type  reflect.Type
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %v literal: %q", e.Type, e.Value)
	}
	return fmt.Sprintf("invalid %v literal: %q: %v", e.Type, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// OverflowError represents a domain value outside of store type range
type OverflowError struct {
	Value string
	Type  reflect.Type
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("value %v overflows %v", e.Value, e.Type)
}
