package lookup

import "fmt"

// NullArgumentError is returned when a nil service identifier or a nil value
// is passed to a Lookup operation.
type NullArgumentError struct {
	Op       string
	Argument string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("null argument: %s requires a non-nil %s", e.Op, e.Argument)
}

// KeyNotFoundError represents a missing entry for a service identifier.
type KeyNotFoundError struct {
	ServiceIdentifier any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %v", e.ServiceIdentifier)
}

// InvalidKeyError represents a service identifier whose dynamic type cannot
// be compared, such as a slice or a map.
type InvalidKeyError struct {
	Op   string
	Type string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key: %s cannot use uncomparable type %s as a service identifier", e.Op, e.Type)
}
