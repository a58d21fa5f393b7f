package esconv

import (
	"fmt"
	"reflect"

	"github.com/viant/esconv/conv"
	"github.com/viant/esconv/geo"
)

type (
	//Conversions represents an immutable conversion table
	Conversions struct {
		entries     []*conv.Entry
		byPair      map[pair]*conv.Entry
		byKey       map[conv.Key]*conv.Entry
		writeTarget map[reflect.Type]reflect.Type
		simpleTypes map[reflect.Type]bool
	}

	pair struct {
		source reflect.Type
		target reflect.Type
	}
)

// New creates conversions seeded with built-in converters followed by custom ones; custom entries take precedence
func New(custom []*conv.Entry, opts ...Option) (*Conversions, error) {
	if custom == nil {
		return nil, fmt.Errorf("custom converters were nil: %w", ErrInvalidArgument)
	}
	o := &options{}
	o.apply(opts)

	var entries []*conv.Entry
	entries = append(entries, geo.Converters()...)
	entries = append(entries, uuidConverters()...)
	entries = append(entries, decimalConverters(o.exactDecimals)...)
	for i, entry := range custom {
		if entry == nil || entry.Source == nil || entry.Target == nil {
			return nil, fmt.Errorf("custom converter[%d] was undefined: %w", i, ErrInvalidArgument)
		}
		entries = append(entries, entry)
	}

	ret := &Conversions{
		entries:     entries,
		byPair:      make(map[pair]*conv.Entry, len(entries)),
		byKey:       make(map[conv.Key]*conv.Entry, len(entries)),
		writeTarget: make(map[reflect.Type]reflect.Type),
		simpleTypes: make(map[reflect.Type]bool),
	}
	// later entries overwrite earlier ones, so index holds the most recently added match
	for _, entry := range entries {
		ret.byPair[pair{entry.Source, entry.Target}] = entry
		ret.byKey[entry.Key()] = entry
		if entry.Direction == conv.Write {
			ret.writeTarget[entry.Source] = entry.Target
			ret.simpleTypes[entry.Source] = true
		}
	}
	return ret, nil
}

// Lookup returns the most recently added entry converting source to target type
func (c *Conversions) Lookup(source, target reflect.Type) (*conv.Entry, bool) {
	entry, ok := c.byPair[pair{source, target}]
	return entry, ok
}

// LookupDirection returns the most recently added entry converting source to target type in supplied direction
func (c *Conversions) LookupDirection(direction conv.Direction, source, target reflect.Type) (*conv.Entry, bool) {
	entry, ok := c.byKey[conv.Key{Source: source, Target: target, Direction: direction}]
	return entry, ok
}

// HasReadConverter returns true if store type source can be read as target
func (c *Conversions) HasReadConverter(source, target reflect.Type) bool {
	_, ok := c.LookupDirection(conv.Read, source, target)
	return ok
}

// HasWriteConverter returns true if domain type source can be written as target
func (c *Conversions) HasWriteConverter(source, target reflect.Type) bool {
	_, ok := c.LookupDirection(conv.Write, source, target)
	return ok
}

// WriteTarget returns store type the supplied domain type is written as
func (c *Conversions) WriteTarget(source reflect.Type) (reflect.Type, bool) {
	target, ok := c.writeTarget[source]
	return target, ok
}

// IsSimpleType returns true if type is stored as a single document value
func (c *Conversions) IsSimpleType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if c.simpleTypes[t] {
		return true
	}
	return isStoreType(t)
}

// Entries returns a copy of the conversion table in insertion order
func (c *Conversions) Entries() []*conv.Entry {
	ret := make([]*conv.Entry, len(c.entries))
	copy(ret, c.entries)
	return ret
}
