package bindery

import (
	"go.uber.org/zap"

	"github.com/centraunit/bindery/binding"
)

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the logger used for registry events. A nil logger disables
// logging.
func WithLogger(logger *zap.Logger) Option {
	return func(k *Kernel) {
		if logger == nil {
			logger = zap.NewNop()
		}
		k.logger = logger
	}
}

// WithDefaultScope sets the scope new bindings start with.
func WithDefaultScope(scope binding.Scope) Option {
	return func(k *Kernel) {
		if scope != "" {
			k.defaultScope = scope
		}
	}
}
