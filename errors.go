package bindery

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/centraunit/bindery/binding"
	"github.com/centraunit/bindery/lookup"
	"github.com/centraunit/bindery/syntax"
)

// Error kinds raised by the packages behind the kernel.
type (
	NullArgumentError           = lookup.NullArgumentError
	KeyNotFoundError            = lookup.KeyNotFoundError
	InvalidKeyError             = lookup.InvalidKeyError
	InvalidFunctionBindingError = syntax.InvalidFunctionBindingError
	InvalidBindingTypeError     = binding.InvalidBindingTypeError
)

// ErrNoSnapshot is returned by Restore when no snapshot was taken.
var ErrNoSnapshot = errors.New("bindery: no snapshot available to restore")

// UnconfiguredBindingError lists the bindings Validate found without a
// construction strategy.
type UnconfiguredBindingError struct {
	Errs []error
}

func (e *UnconfiguredBindingError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d unconfigured binding(s): %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *UnconfiguredBindingError) Unwrap() []error {
	return e.Errs
}

func IsNullArgument(err error) bool {
	var e *NullArgumentError
	return errors.As(err, &e)
}

func IsKeyNotFound(err error) bool {
	var e *KeyNotFoundError
	return errors.As(err, &e)
}

func IsInvalidFunctionBinding(err error) bool {
	var e *InvalidFunctionBindingError
	return errors.As(err, &e)
}

func IsInvalidBindingType(err error) bool {
	var e *InvalidBindingTypeError
	return errors.As(err, &e)
}
