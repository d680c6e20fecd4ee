// Package lookup implements a multimap from service identifier to an ordered
// list of values, the storage behind a container's bindings.
//
// A Lookup is not safe for concurrent use. The owning container serializes
// access; a child container works on its own Clone.
package lookup

import (
	"reflect"
	"slices"
)

// Value is what a Lookup can store. Clone must return an independent copy
// with a fresh identity; ModuleID names the module that contributed the value.
type Value[T any] interface {
	Clone() T
	ModuleID() string
}

// KeyValuePair holds every value registered under one service identifier,
// in registration order.
type KeyValuePair[T any] struct {
	ServiceIdentifier any
	Values            []T
}

// Lookup is a map with support for duplicate keys. Entries keep the order in
// which their identifiers were first added.
type Lookup[T Value[T]] struct {
	entries []*KeyValuePair[T]
	index   map[any]*KeyValuePair[T]
}

// New creates an empty Lookup.
func New[T Value[T]]() *Lookup[T] {
	return &Lookup[T]{
		index: make(map[any]*KeyValuePair[T]),
	}
}

// Add appends value to the entry for serviceIdentifier, creating the entry on
// first use.
func (l *Lookup[T]) Add(serviceIdentifier any, value T) error {
	if err := checkKey("add", serviceIdentifier); err != nil {
		return err
	}
	if isNil(value) {
		return &NullArgumentError{Op: "add", Argument: "value"}
	}

	if kv, ok := l.index[serviceIdentifier]; ok {
		kv.Values = append(kv.Values, value)
		return nil
	}

	kv := &KeyValuePair[T]{ServiceIdentifier: serviceIdentifier, Values: []T{value}}
	l.entries = append(l.entries, kv)
	l.index[serviceIdentifier] = kv
	return nil
}

// Get returns the values registered for serviceIdentifier.
//
// The returned slice shares its elements with the Lookup: it is not a copy.
// Its capacity is clipped, so appending to it never writes into the Lookup,
// and a later Add is not reflected in a slice obtained earlier.
func (l *Lookup[T]) Get(serviceIdentifier any) ([]T, error) {
	if err := checkKey("get", serviceIdentifier); err != nil {
		return nil, err
	}

	kv, ok := l.index[serviceIdentifier]
	if !ok {
		return nil, &KeyNotFoundError{ServiceIdentifier: serviceIdentifier}
	}
	return slices.Clip(kv.Values), nil
}

// Remove deletes the entry for serviceIdentifier with all of its values.
func (l *Lookup[T]) Remove(serviceIdentifier any) error {
	if err := checkKey("remove", serviceIdentifier); err != nil {
		return err
	}

	kv, ok := l.index[serviceIdentifier]
	if !ok {
		return &KeyNotFoundError{ServiceIdentifier: serviceIdentifier}
	}
	delete(l.index, serviceIdentifier)
	l.entries = slices.DeleteFunc(l.entries, func(e *KeyValuePair[T]) bool { return e == kv })
	return nil
}

// RemoveByModuleID drops every value contributed by moduleID. Entries left
// without values are removed.
func (l *Lookup[T]) RemoveByModuleID(moduleID string) {
	l.RemoveFunc(func(v T) bool { return v.ModuleID() == moduleID })
}

// RemoveFunc drops every value for which fn returns true. Entries left
// without values are removed; the others keep their order.
func (l *Lookup[T]) RemoveFunc(fn func(v T) bool) {
	kept := l.entries[:0]
	for _, kv := range l.entries {
		values := make([]T, 0, len(kv.Values))
		for _, v := range kv.Values {
			if !fn(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			delete(l.index, kv.ServiceIdentifier)
			continue
		}
		kv.Values = values
		kept = append(kept, kv)
	}
	clear(l.entries[len(kept):])
	l.entries = kept
}

// HasKey reports whether an entry exists for serviceIdentifier.
func (l *Lookup[T]) HasKey(serviceIdentifier any) (bool, error) {
	if err := checkKey("hasKey", serviceIdentifier); err != nil {
		return false, err
	}
	_, ok := l.index[serviceIdentifier]
	return ok, nil
}

// Clone returns a Lookup holding a Clone of every value. The two share no
// slices; mutating one never affects the other.
func (l *Lookup[T]) Clone() *Lookup[T] {
	c := &Lookup[T]{
		entries: make([]*KeyValuePair[T], 0, len(l.entries)),
		index:   make(map[any]*KeyValuePair[T], len(l.entries)),
	}
	for _, kv := range l.entries {
		values := make([]T, len(kv.Values))
		for i, v := range kv.Values {
			values[i] = v.Clone()
		}
		ckv := &KeyValuePair[T]{ServiceIdentifier: kv.ServiceIdentifier, Values: values}
		c.entries = append(c.entries, ckv)
		c.index[kv.ServiceIdentifier] = ckv
	}
	return c
}

// Len returns the number of entries.
func (l *Lookup[T]) Len() int {
	return len(l.entries)
}

// Keys returns the service identifiers in entry order.
func (l *Lookup[T]) Keys() []any {
	keys := make([]any, len(l.entries))
	for i, kv := range l.entries {
		keys[i] = kv.ServiceIdentifier
	}
	return keys
}

// Traverse calls fn for every entry in order until fn returns false.
// fn must not modify the Lookup.
func (l *Lookup[T]) Traverse(fn func(serviceIdentifier any, values []T) bool) {
	for _, kv := range l.entries {
		if !fn(kv.ServiceIdentifier, slices.Clip(kv.Values)) {
			return
		}
	}
}

func checkKey(op string, serviceIdentifier any) error {
	if serviceIdentifier == nil {
		return &NullArgumentError{Op: op, Argument: "service identifier"}
	}
	// interface fields may hold uncomparable dynamic values, so check the value
	if v := reflect.ValueOf(serviceIdentifier); !v.Comparable() {
		return &InvalidKeyError{Op: op, Type: v.Type().String()}
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
