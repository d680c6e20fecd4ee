package syntax

import (
	"github.com/centraunit/bindery/binding"
)

// BindingInSyntax selects the scope of a binding.
type BindingInSyntax[T any] struct {
	target *target[T]
}

func (s *BindingInSyntax[T]) InSingletonScope() *BindingWhenOnSyntax[T] {
	return s.in(binding.ScopeSingleton)
}

func (s *BindingInSyntax[T]) InTransientScope() *BindingWhenOnSyntax[T] {
	return s.in(binding.ScopeTransient)
}

func (s *BindingInSyntax[T]) InRequestScope() *BindingWhenOnSyntax[T] {
	return s.in(binding.ScopeRequest)
}

func (s *BindingInSyntax[T]) in(scope binding.Scope) *BindingWhenOnSyntax[T] {
	s.target.update(func(b *binding.Binding[T]) { b.Scope = scope })
	return newWhenOn(s.target)
}

// BindingWhenSyntax sets the constraint of a binding. Each call replaces the
// previous constraint.
type BindingWhenSyntax[T any] struct {
	target *target[T]
}

func (s *BindingWhenSyntax[T]) When(constraint func(r *binding.Request) bool) *BindingOnSyntax[T] {
	s.target.update(func(b *binding.Binding[T]) { b.Constraint = constraint })
	return &BindingOnSyntax[T]{target: s.target}
}

func (s *BindingWhenSyntax[T]) WhenTargetNamed(name string) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return r != nil && r.Target.IsNamed() && r.Target.Name == name
	})
}

func (s *BindingWhenSyntax[T]) WhenTargetTagged(key string, value any) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return r != nil && r.Target.MatchesTag(key, value)
	})
}

// WhenInjectedInto accepts requests whose direct parent asks for
// serviceIdentifier.
func (s *BindingWhenSyntax[T]) WhenInjectedInto(serviceIdentifier any) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return r != nil && r.Parent != nil && r.Parent.ServiceIdentifier == serviceIdentifier
	})
}

func (s *BindingWhenSyntax[T]) WhenParentNamed(name string) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return r != nil && r.Parent != nil && r.Parent.Target.IsNamed() && r.Parent.Target.Name == name
	})
}

func (s *BindingWhenSyntax[T]) WhenAnyAncestorIs(serviceIdentifier any) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return r.Ancestors(func(p *binding.Request) bool { return p.ServiceIdentifier == serviceIdentifier })
	})
}

func (s *BindingWhenSyntax[T]) WhenNoAncestorIs(serviceIdentifier any) *BindingOnSyntax[T] {
	return s.When(func(r *binding.Request) bool {
		return !r.Ancestors(func(p *binding.Request) bool { return p.ServiceIdentifier == serviceIdentifier })
	})
}

// BindingOnSyntax sets the activation hook of a binding.
type BindingOnSyntax[T any] struct {
	target *target[T]
}

func (s *BindingOnSyntax[T]) OnActivation(fn func(ctx *binding.Context, v T) T) *BindingWhenSyntax[T] {
	s.target.update(func(b *binding.Binding[T]) { b.OnActivation = fn })
	return &BindingWhenSyntax[T]{target: s.target}
}

// BindingWhenOnSyntax is returned by strategies that have no scope choice.
type BindingWhenOnSyntax[T any] struct {
	*BindingWhenSyntax[T]
	*BindingOnSyntax[T]
}

func newWhenOn[T any](t *target[T]) *BindingWhenOnSyntax[T] {
	return &BindingWhenOnSyntax[T]{
		BindingWhenSyntax: &BindingWhenSyntax[T]{target: t},
		BindingOnSyntax:   &BindingOnSyntax[T]{target: t},
	}
}

// BindingInWhenOnSyntax is returned by strategies whose produced values are
// subject to scope.
type BindingInWhenOnSyntax[T any] struct {
	*BindingInSyntax[T]
	*BindingWhenSyntax[T]
	*BindingOnSyntax[T]
}

func newInWhenOn[T any](t *target[T]) *BindingInWhenOnSyntax[T] {
	return &BindingInWhenOnSyntax[T]{
		BindingInSyntax:   &BindingInSyntax[T]{target: t},
		BindingWhenSyntax: &BindingWhenSyntax[T]{target: t},
		BindingOnSyntax:   &BindingOnSyntax[T]{target: t},
	}
}
