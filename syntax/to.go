// Package syntax is the fluent configuration layer over binding.Binding.
//
//	k.Bind("Warrior").To(reflect.TypeOf(Ninja{})).InSingletonScope().WhenTargetNamed("shadow")
//
// Every To* call replaces the whole construction strategy, so the fields of
// a previously selected strategy never leak into the new one.
package syntax

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/centraunit/bindery/binding"
)

// BindingToSyntax selects the construction strategy of a binding.
type BindingToSyntax[T any] struct {
	target *target[T]
}

// NewBindingToSyntax configures b without locking. Use NewLockedBindingToSyntax
// when b is shared with readers on other goroutines.
func NewBindingToSyntax[T any](b *binding.Binding[T]) *BindingToSyntax[T] {
	return NewLockedBindingToSyntax(b, nopLocker{})
}

// NewLockedBindingToSyntax configures b holding mu for every write, including
// the writes of the In, When and On syntaxes it leads to.
func NewLockedBindingToSyntax[T any](b *binding.Binding[T], mu sync.Locker) *BindingToSyntax[T] {
	return &BindingToSyntax[T]{target: &target[T]{binding: b, mu: mu}}
}

// Binding returns the binding being configured.
func (s *BindingToSyntax[T]) Binding() *binding.Binding[T] {
	return s.target.binding
}

// To constructs a new implementation value per resolution.
func (s *BindingToSyntax[T]) To(implementation reflect.Type) *BindingInWhenOnSyntax[T] {
	s.set(binding.InstanceOf[T]{Implementation: implementation})
	return newInWhenOn(s.target)
}

// ToSelf uses the service identifier as the implementation. It requires the
// identifier to be a reflect.Type.
func (s *BindingToSyntax[T]) ToSelf() (*BindingInWhenOnSyntax[T], error) {
	id := s.target.binding.ServiceIdentifier()
	t, ok := id.(reflect.Type)
	if !ok || t == nil {
		return nil, &InvalidSelfBindingError{ServiceIdentifier: id}
	}
	return s.To(t), nil
}

func (s *BindingToSyntax[T]) ToConstantValue(value T) *BindingWhenOnSyntax[T] {
	s.set(binding.Constant[T]{Value: value}, value)
	return newWhenOn(s.target)
}

func (s *BindingToSyntax[T]) ToDynamicValue(producer func() T) *BindingInWhenOnSyntax[T] {
	s.set(binding.Dynamic[T]{Producer: producer})
	return newInWhenOn(s.target)
}

// ToConstructor hands out the implementation type itself.
func (s *BindingToSyntax[T]) ToConstructor(implementation reflect.Type) *BindingWhenOnSyntax[T] {
	s.set(binding.ConstructorOf[T]{Implementation: implementation})
	return newWhenOn(s.target)
}

func (s *BindingToSyntax[T]) ToFactory(creator binding.FactoryCreator[T]) *BindingWhenOnSyntax[T] {
	s.set(binding.FactoryOf[T]{Creator: creator})
	return newWhenOn(s.target)
}

// ToFunction hands out fn verbatim. fn must be a function.
func (s *BindingToSyntax[T]) ToFunction(fn T) (*BindingWhenOnSyntax[T], error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, &InvalidFunctionBindingError{Got: fmt.Sprintf("%T", fn)}
	}
	s.set(binding.FunctionValue[T]{Fn: fn}, fn)
	return newWhenOn(s.target), nil
}

// ToAutoFactory binds a factory that resolves serviceIdentifier through the
// resolver of the context it is created in.
func (s *BindingToSyntax[T]) ToAutoFactory(serviceIdentifier any) *BindingWhenOnSyntax[T] {
	creator := func(ctx *binding.Context) binding.FactoryFunc[T] {
		return func(...any) (T, error) {
			var zero T
			if ctx == nil || ctx.Resolver == nil {
				return zero, &MissingResolverError{ServiceIdentifier: serviceIdentifier}
			}
			v, err := ctx.Resolver.Get(ctx, serviceIdentifier)
			if err != nil {
				return zero, err
			}
			typed, ok := v.(T)
			if !ok {
				return zero, &TypeMismatchError{
					Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
					Got:      fmt.Sprintf("%T", v),
				}
			}
			return typed, nil
		}
	}
	s.set(binding.FactoryOf[T]{Creator: creator, Auto: true})
	return newWhenOn(s.target)
}

func (s *BindingToSyntax[T]) ToProvider(creator binding.ProviderCreator[T]) *BindingWhenOnSyntax[T] {
	s.set(binding.ProviderOf[T]{Creator: creator})
	return newWhenOn(s.target)
}

// set replaces the strategy and drops any cached value, priming the cache
// with cached when one is given.
func (s *BindingToSyntax[T]) set(strategy binding.Strategy[T], cached ...T) {
	s.target.update(func(b *binding.Binding[T]) {
		b.ClearCache()
		b.Activated = false
		b.Strategy = strategy
		if len(cached) > 0 {
			b.SetCache(cached[0])
		}
	})
}

// target is the binding being configured and the lock guarding its fields.
type target[T any] struct {
	binding *binding.Binding[T]
	mu      sync.Locker
}

func (t *target[T]) update(fn func(b *binding.Binding[T])) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.binding)
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
