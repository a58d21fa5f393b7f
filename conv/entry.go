package conv

import (
	"fmt"
	"reflect"
)

// Direction represents conversion direction
type Direction int

const (
	// Read converts a store representation into a domain type
	Read Direction = iota
	// Write converts a domain type into a store representation
	Write
)

func (d Direction) String() string {
	switch d {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

type (
	//Func converts a source value into a target value
	Func func(src interface{}) (interface{}, error)

	//Entry represents a conversion from Source to Target in a given direction
	Entry struct {
		Direction Direction
		Source    reflect.Type
		Target    reflect.Type
		fn        Func
	}

	//Key identifies an entry
	Key struct {
		Source    reflect.Type
		Target    reflect.Type
		Direction Direction
	}
)

// Key returns entry identity
func (e *Entry) Key() Key {
	return Key{Source: e.Source, Target: e.Target, Direction: e.Direction}
}

// Matches returns true if entry converts source to target type
func (e *Entry) Matches(source, target reflect.Type) bool {
	return e.Source == source && e.Target == target
}

// Convert converts supplied value
func (e *Entry) Convert(src interface{}) (interface{}, error) {
	if src == nil {
		return nil, fmt.Errorf("failed to %v %v to %v: source was nil", e.Direction, e.Source, e.Target)
	}
	if srcType := reflect.TypeOf(src); !e.accepts(srcType) {
		return nil, fmt.Errorf("failed to %v %v to %v: incompatible source type %v", e.Direction, e.Source, e.Target, srcType)
	}
	return e.fn(src)
}

func (e *Entry) accepts(srcType reflect.Type) bool {
	if srcType == e.Source {
		return true
	}
	return e.Source.Kind() == reflect.Interface && srcType.Implements(e.Source)
}

func (e *Entry) String() string {
	return e.Direction.String() + ":" + e.Source.String() + "->" + e.Target.String()
}

// NewEntry creates an entry for untyped conversion function
func NewEntry(direction Direction, source, target reflect.Type, fn Func) *Entry {
	return &Entry{Direction: direction, Source: source, Target: target, fn: fn}
}

// NewReading creates a reading entry converting store value S into domain value T
func NewReading[S any, T any](fn func(S) (T, error)) *Entry {
	return newTypedEntry(Read, fn)
}

// NewWriting creates a writing entry converting domain value S into store value T
func NewWriting[S any, T any](fn func(S) (T, error)) *Entry {
	return newTypedEntry(Write, fn)
}

func newTypedEntry[S any, T any](direction Direction, fn func(S) (T, error)) *Entry {
	source := reflect.TypeOf((*S)(nil)).Elem()
	target := reflect.TypeOf((*T)(nil)).Elem()
	return NewEntry(direction, source, target, func(src interface{}) (interface{}, error) {
		value, ok := src.(S)
		if !ok {
			return nil, fmt.Errorf("expected %v, but had %T", source, src)
		}
		ret, err := fn(value)
		if err != nil {
			return nil, err
		}
		return ret, nil
	})
}
