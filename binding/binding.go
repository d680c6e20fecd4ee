// Package binding describes how a service identifier maps to an
// implementation, how that implementation is produced and how produced values
// are cached.
//
// A Binding is a passive record. It never constructs values and never checks
// that its configuration is consistent; the syntax package configures it and
// an external resolver consumes it.
package binding

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Binding maps one service identifier onto a construction strategy.
type Binding[T any] struct {
	id                string
	serviceIdentifier any
	moduleID          string

	// Activated is set by the resolver once a produced value went through
	// OnActivation and the scope decided whether to cache it.
	Activated bool

	Strategy Strategy[T]
	Scope    Scope

	// Constraint limits the requests this binding is eligible for.
	Constraint func(r *Request) bool

	// OnActivation is applied to a freshly produced value before it is cached
	// or injected.
	OnActivation func(ctx *Context, v T) T

	cache  T
	cached bool
}

// New creates an unconfigured transient binding for serviceIdentifier.
func New[T any](serviceIdentifier any) *Binding[T] {
	return &Binding[T]{
		id:                uuid.NewString(),
		serviceIdentifier: serviceIdentifier,
		Scope:             ScopeTransient,
		Constraint:        acceptAll,
	}
}

func acceptAll(*Request) bool { return true }

// ID returns the identity token assigned at creation.
func (b *Binding[T]) ID() string { return b.id }

func (b *Binding[T]) ServiceIdentifier() any { return b.serviceIdentifier }

// ModuleID names the module that registered the binding, empty when it was
// registered directly.
func (b *Binding[T]) ModuleID() string { return b.moduleID }

func (b *Binding[T]) SetModuleID(id string) { b.moduleID = id }

// Type reports the construction strategy, Invalid while unconfigured.
func (b *Binding[T]) Type() Type {
	if b.Strategy == nil {
		return Invalid
	}
	return b.Strategy.Type()
}

// ImplementationType returns the implementation of an Instance or
// Constructor binding, nil otherwise.
func (b *Binding[T]) ImplementationType() reflect.Type {
	switch s := b.Strategy.(type) {
	case InstanceOf[T]:
		return s.Implementation
	case ConstructorOf[T]:
		return s.Implementation
	}
	return nil
}

func (b *Binding[T]) DynamicValue() func() T {
	if s, ok := b.Strategy.(Dynamic[T]); ok {
		return s.Producer
	}
	return nil
}

func (b *Binding[T]) Factory() FactoryCreator[T] {
	if s, ok := b.Strategy.(FactoryOf[T]); ok {
		return s.Creator
	}
	return nil
}

func (b *Binding[T]) Provider() ProviderCreator[T] {
	if s, ok := b.Strategy.(ProviderOf[T]); ok {
		return s.Creator
	}
	return nil
}

// Cache returns the cached value and whether one is present.
func (b *Binding[T]) Cache() (T, bool) {
	return b.cache, b.cached
}

func (b *Binding[T]) SetCache(v T) {
	b.cache = v
	b.cached = true
}

func (b *Binding[T]) ClearCache() {
	var zero T
	b.cache = zero
	b.cached = false
}

// Clone returns a binding with a new identity and the same configuration.
// Activation state is not carried over; the cache is.
func (b *Binding[T]) Clone() *Binding[T] {
	return &Binding[T]{
		id:                uuid.NewString(),
		serviceIdentifier: b.serviceIdentifier,
		moduleID:          b.moduleID,
		Strategy:          b.Strategy,
		Scope:             b.Scope,
		Constraint:        b.Constraint,
		OnActivation:      b.OnActivation,
		cache:             b.cache,
		cached:            b.cached,
	}
}

func (b *Binding[T]) String() string {
	return fmt.Sprintf("Binding(%s %v %s %s)", b.id, b.serviceIdentifier, b.Type(), b.Scope)
}

// EnsureResolvable reports an error for bindings that were never configured.
func EnsureResolvable[T any](b *Binding[T]) error {
	if b.Type() == Invalid {
		return &InvalidBindingTypeError{ServiceIdentifier: b.serviceIdentifier}
	}
	return nil
}

// Token is a unique symbolic service identifier. Two tokens are never equal,
// even with the same description.
type Token struct {
	desc string
}

func NewToken(description string) *Token {
	return &Token{desc: description}
}

func (t *Token) String() string {
	return "Token(" + t.desc + ")"
}

// TypeOf returns the reflect.Type of T for use as a service identifier.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
