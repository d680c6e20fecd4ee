package bindery

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/centraunit/bindery/binding"
	"github.com/centraunit/bindery/config"
	"github.com/centraunit/bindery/lookup"
	"github.com/centraunit/bindery/syntax"
)

type registry = lookup.Lookup[*binding.Binding[any]]

// Kernel owns the bindings of one container.
// It is safe for concurrent use; the lookup it wraps is not. Builders returned
// by Bind take the kernel lock for every write they make. Bindings handed out
// by Bindings are live and must not be written to while other goroutines use
// the kernel.
type Kernel struct {
	mu           sync.RWMutex
	bindings     *registry
	snapshots    []*registry
	defaultScope binding.Scope
	logger       *zap.Logger
}

// New creates an empty kernel.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		bindings:     lookup.New[*binding.Binding[any]](),
		defaultScope: binding.ScopeTransient,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// NewFromConfig creates a kernel whose default scope and logger come from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Kernel, error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, errors.Wrap(err, "bindery: build logger")
	}
	base := []Option{WithDefaultScope(cfg.DefaultScope), WithLogger(logger)}
	return New(append(base, opts...)...), nil
}

// Bind registers a new binding for serviceIdentifier and returns the syntax
// used to configure it. Earlier bindings for the same identifier are kept.
func (k *Kernel) Bind(serviceIdentifier any) (*syntax.BindingToSyntax[any], error) {
	return k.bind(serviceIdentifier, "")
}

// MustBind is like Bind but panics on an invalid service identifier.
func (k *Kernel) MustBind(serviceIdentifier any) *syntax.BindingToSyntax[any] {
	to, err := k.Bind(serviceIdentifier)
	if err != nil {
		panic(err)
	}
	return to
}

func (k *Kernel) bind(serviceIdentifier any, moduleID string) (*syntax.BindingToSyntax[any], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	b := binding.New[any](serviceIdentifier)
	b.Scope = k.defaultScope
	b.SetModuleID(moduleID)

	if err := k.bindings.Add(serviceIdentifier, b); err != nil {
		return nil, err
	}

	k.logger.Debug("binding registered",
		zap.String("service", describe(serviceIdentifier)),
		zap.String("binding_id", b.ID()),
		zap.String("module", moduleID),
	)
	return syntax.NewLockedBindingToSyntax(b, &k.mu), nil
}

// Rebind drops every binding of serviceIdentifier and registers a new one.
func (k *Kernel) Rebind(serviceIdentifier any) (*syntax.BindingToSyntax[any], error) {
	if err := k.Unbind(serviceIdentifier); err != nil && !IsKeyNotFound(err) {
		return nil, err
	}
	return k.Bind(serviceIdentifier)
}

// Unbind removes every binding of serviceIdentifier.
func (k *Kernel) Unbind(serviceIdentifier any) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.bindings.Remove(serviceIdentifier); err != nil {
		return err
	}
	k.logger.Debug("service unbound", zap.String("service", describe(serviceIdentifier)))
	return nil
}

// UnbindAll removes every binding. Snapshots are kept.
func (k *Kernel) UnbindAll() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.bindings = lookup.New[*binding.Binding[any]]()
	k.logger.Debug("all services unbound")
}

func (k *Kernel) IsBound(serviceIdentifier any) (bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.bindings.HasKey(serviceIdentifier)
}

// Bindings returns the bindings registered for serviceIdentifier in
// registration order. The bindings themselves are shared with the kernel.
func (k *Kernel) Bindings(serviceIdentifier any) ([]*binding.Binding[any], error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.bindings.Get(serviceIdentifier)
}

// Snapshot saves a copy of the current bindings for a later Restore.
func (k *Kernel) Snapshot() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.snapshots = append(k.snapshots, k.bindings.Clone())
	k.logger.Debug("snapshot taken", zap.Int("depth", len(k.snapshots)))
}

// Restore replaces the bindings with the most recent snapshot.
func (k *Kernel) Restore() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	n := len(k.snapshots)
	if n == 0 {
		return ErrNoSnapshot
	}
	k.bindings = k.snapshots[n-1]
	k.snapshots[n-1] = nil
	k.snapshots = k.snapshots[:n-1]
	k.logger.Debug("snapshot restored", zap.Int("depth", len(k.snapshots)))
	return nil
}

// Validate reports every binding that was registered but never given a
// construction strategy.
func (k *Kernel) Validate() error {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var unconfigured []error
	k.bindings.Traverse(func(_ any, values []*binding.Binding[any]) bool {
		for _, b := range values {
			if err := binding.EnsureResolvable(b); err != nil {
				unconfigured = append(unconfigured, err)
			}
		}
		return true
	})
	if len(unconfigured) > 0 {
		return &UnconfiguredBindingError{Errs: unconfigured}
	}
	return nil
}

// Merge returns a kernel holding clones of the bindings of a followed by
// those of b. The result takes its logger and default scope from a.
func Merge(a, b *Kernel) *Kernel {
	a.mu.RLock()
	merged := New(WithLogger(a.logger), WithDefaultScope(a.defaultScope))
	cloneInto(merged.bindings, a.bindings)
	a.mu.RUnlock()

	b.mu.RLock()
	cloneInto(merged.bindings, b.bindings)
	b.mu.RUnlock()

	merged.logger.Debug("kernels merged", zap.Int("services", merged.bindings.Len()))
	return merged
}

func cloneInto(dst, src *registry) {
	src.Traverse(func(id any, values []*binding.Binding[any]) bool {
		for _, v := range values {
			// src only holds validated identifiers and non-nil bindings
			_ = dst.Add(id, v.Clone())
		}
		return true
	})
}

func describe(serviceIdentifier any) string {
	return fmt.Sprintf("%v", serviceIdentifier)
}
