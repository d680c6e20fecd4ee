package binding

import "fmt"

// Scope defines the lifetime and sharing behavior of a produced value.
type Scope string

// Available binding scopes
const (
	// ScopeTransient creates a new instance for each resolution
	ScopeTransient Scope = "transient"
	// ScopeRequest shares an instance within one resolution graph
	ScopeRequest Scope = "request"
	// ScopeSingleton shares a single instance across the container
	ScopeSingleton Scope = "singleton"
)

// ParseScope maps a textual scope name onto a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeTransient, ScopeRequest, ScopeSingleton:
		return Scope(s), nil
	}
	return "", fmt.Errorf("binding: unknown scope %q", s)
}

// Type is the construction strategy of a binding.
type Type uint8

const (
	Invalid Type = iota
	Instance
	ConstantValue
	DynamicValue
	Constructor
	Factory
	Function
	Provider
)

var typeNames = [...]string{
	Invalid:       "Invalid",
	Instance:      "Instance",
	ConstantValue: "ConstantValue",
	DynamicValue:  "DynamicValue",
	Constructor:   "Constructor",
	Factory:       "Factory",
	Function:      "Function",
	Provider:      "Provider",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}
