package bindery

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/centraunit/bindery/binding"
	"github.com/centraunit/bindery/syntax"
)

// BindFunc registers a binding on behalf of a module.
type BindFunc func(serviceIdentifier any) (*syntax.BindingToSyntax[any], error)

// UnbindFunc removes every binding of a service identifier.
type UnbindFunc func(serviceIdentifier any) error

// Registry declares the bindings of a module. It must register through the
// functions it receives so the bindings are tagged with the module, and must
// not keep using them after it returns.
type Registry func(bind BindFunc, unbind UnbindFunc) error

// Module groups bindings so they can be loaded and unloaded together.
type Module struct {
	id       string
	name     string
	registry Registry
}

func NewModule(name string, registry Registry) *Module {
	return &Module{
		id:       uuid.NewString(),
		name:     name,
		registry: registry,
	}
}

func (m *Module) ID() string   { return m.id }
func (m *Module) Name() string { return m.name }

// Load runs the registry of every module in order. When a registry fails,
// the bindings that call made are removed and loading stops. Bindings from
// earlier loads of the same module are kept.
func (k *Kernel) Load(modules ...*Module) error {
	for _, m := range modules {
		created := make(map[*binding.Binding[any]]struct{})
		bind := func(serviceIdentifier any) (*syntax.BindingToSyntax[any], error) {
			to, err := k.bind(serviceIdentifier, m.id)
			if err != nil {
				return nil, err
			}
			created[to.Binding()] = struct{}{}
			return to, nil
		}
		if err := m.registry(bind, k.Unbind); err != nil {
			k.rollback(created)
			return errors.Wrapf(err, "bindery: load module %q", m.name)
		}
		k.logger.Info("module loaded", zap.String("module", m.name), zap.String("module_id", m.id))
	}
	return nil
}

// Unload removes every binding registered by the given modules. Bindings the
// modules did not register are left alone.
func (k *Kernel) Unload(modules ...*Module) {
	for _, m := range modules {
		k.removeModule(m)
		k.logger.Info("module unloaded", zap.String("module", m.name), zap.String("module_id", m.id))
	}
}

func (k *Kernel) rollback(created map[*binding.Binding[any]]struct{}) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings.RemoveFunc(func(b *binding.Binding[any]) bool {
		_, ok := created[b]
		return ok
	})
}

func (k *Kernel) removeModule(m *Module) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings.RemoveByModuleID(m.id)
}
