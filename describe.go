package bindery

import (
	"github.com/centraunit/bindery/binding"
)

// BindingInfo is a read-only description of one binding.
type BindingInfo struct {
	ID                string `json:"id"`
	ServiceIdentifier string `json:"service"`
	Type              string `json:"type"`
	Scope             string `json:"scope"`
	Module            string `json:"module,omitempty"`
	Implementation    string `json:"implementation,omitempty"`
	Activated         bool   `json:"activated"`
	Cached            bool   `json:"cached"`
}

// Describe lists every binding in registration order.
func (k *Kernel) Describe() []BindingInfo {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []BindingInfo
	k.bindings.Traverse(func(id any, values []*binding.Binding[any]) bool {
		for _, b := range values {
			out = append(out, info(id, b))
		}
		return true
	})
	return out
}

// Services returns the bound service identifiers in registration order.
func (k *Kernel) Services() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	keys := k.bindings.Keys()
	out := make([]string, len(keys))
	for i, id := range keys {
		out[i] = describe(id)
	}
	return out
}

func info(id any, b *binding.Binding[any]) BindingInfo {
	_, cached := b.Cache()
	bi := BindingInfo{
		ID:                b.ID(),
		ServiceIdentifier: describe(id),
		Type:              b.Type().String(),
		Scope:             string(b.Scope),
		Module:            b.ModuleID(),
		Activated:         b.Activated,
		Cached:            cached,
	}
	if t := b.ImplementationType(); t != nil {
		bi.Implementation = t.String()
	}
	return bi
}
