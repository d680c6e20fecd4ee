package binding

import "fmt"

// InvalidBindingTypeError is returned when a binding is resolved before a
// construction strategy was configured.
type InvalidBindingTypeError struct {
	ServiceIdentifier any
}

func (e *InvalidBindingTypeError) Error() string {
	return fmt.Sprintf("invalid binding type: %v", e.ServiceIdentifier)
}
