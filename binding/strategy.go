package binding

import (
	"context"
	"reflect"
)

// FactoryFunc produces a value on demand, possibly from caller supplied
// arguments.
type FactoryFunc[T any] func(args ...any) (T, error)

// FactoryCreator builds a FactoryFunc bound to a resolution context.
type FactoryCreator[T any] func(ctx *Context) FactoryFunc[T]

// ProviderFunc produces a value asynchronously; it blocks until the value is
// ready or ctx is done.
type ProviderFunc[T any] func(ctx context.Context) (T, error)

// ProviderCreator builds a ProviderFunc bound to a resolution context.
type ProviderCreator[T any] func(ctx *Context) ProviderFunc[T]

// Strategy is the construction strategy of a binding. The set of variants is
// closed; a nil Strategy means the binding is not configured yet.
type Strategy[T any] interface {
	Type() Type
	strategy()
}

// InstanceOf constructs a new value of Implementation per resolution.
type InstanceOf[T any] struct {
	Implementation reflect.Type
}

// Constant hands out Value verbatim.
type Constant[T any] struct {
	Value T
}

// Dynamic invokes Producer for every resolution, subject to scope.
type Dynamic[T any] struct {
	Producer func() T
}

// ConstructorOf hands out Implementation itself, uninstantiated.
type ConstructorOf[T any] struct {
	Implementation reflect.Type
}

// FactoryOf obtains a FactoryFunc from Creator. Auto is set for factories
// generated from a service identifier.
type FactoryOf[T any] struct {
	Creator FactoryCreator[T]
	Auto    bool
}

// FunctionValue hands out the function Fn verbatim.
type FunctionValue[T any] struct {
	Fn T
}

// ProviderOf obtains a ProviderFunc from Creator.
type ProviderOf[T any] struct {
	Creator ProviderCreator[T]
}

func (InstanceOf[T]) Type() Type    { return Instance }
func (Constant[T]) Type() Type      { return ConstantValue }
func (Dynamic[T]) Type() Type       { return DynamicValue }
func (ConstructorOf[T]) Type() Type { return Constructor }
func (FactoryOf[T]) Type() Type     { return Factory }
func (FunctionValue[T]) Type() Type { return Function }
func (ProviderOf[T]) Type() Type    { return Provider }

func (InstanceOf[T]) strategy()    {}
func (Constant[T]) strategy()      {}
func (Dynamic[T]) strategy()       {}
func (ConstructorOf[T]) strategy() {}
func (FactoryOf[T]) strategy()     {}
func (FunctionValue[T]) strategy() {}
func (ProviderOf[T]) strategy()    {}
