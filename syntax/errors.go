package syntax

import "fmt"

// InvalidFunctionBindingError is returned when a value that is not a function
// is bound through ToFunction.
type InvalidFunctionBindingError struct {
	Got string
}

func (e *InvalidFunctionBindingError) Error() string {
	return fmt.Sprintf("value provided to function binding must be a function, got %s", e.Got)
}

// InvalidSelfBindingError is returned by ToSelf when the service identifier is
// not a type.
type InvalidSelfBindingError struct {
	ServiceIdentifier any
}

func (e *InvalidSelfBindingError) Error() string {
	return fmt.Sprintf("cannot bind %v to itself: service identifier is not a type", e.ServiceIdentifier)
}

// MissingResolverError is returned by an auto factory invoked without a
// resolver in its context.
type MissingResolverError struct {
	ServiceIdentifier any
}

func (e *MissingResolverError) Error() string {
	return fmt.Sprintf("auto factory for %v: no resolver in context", e.ServiceIdentifier)
}

// TypeMismatchError represents a resolved value of an unexpected type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}
