package binding

import (
	"context"
)

// Resolver is the part of a container that factories and providers call back
// into.
type Resolver interface {
	Get(ctx context.Context, serviceIdentifier any) (any, error)
}

// Context carries the state of one resolution graph traversal: the caller's
// context.Context plus the resolver factories and providers call back into.
type Context struct {
	context.Context
	Resolver Resolver
}

// NewContext creates a Context wrapping parent. A nil parent falls back to
// context.Background.
func NewContext(parent context.Context, resolver Resolver) *Context {
	if parent == nil {
		parent = context.Background()
	}
	return &Context{
		Context:  parent,
		Resolver: resolver,
	}
}

// Target describes the injection point a request is made for.
type Target struct {
	Name string
	Tags map[string]any
}

func (t *Target) IsNamed() bool {
	return t != nil && t.Name != ""
}

func (t *Target) IsTagged() bool {
	return t != nil && len(t.Tags) > 0
}

// MatchesTag reports whether the target carries key with exactly value.
func (t *Target) MatchesTag(key string, value any) bool {
	if t == nil {
		return false
	}
	v, ok := t.Tags[key]
	return ok && v == value
}

// Request is one node of a resolution plan. Constraints are evaluated
// against it.
type Request struct {
	ServiceIdentifier any
	Parent            *Request
	Target            *Target
	Context           *Context
}

// Ancestors walks the parent chain, nearest first, until fn returns true.
func (r *Request) Ancestors(fn func(*Request) bool) bool {
	if r == nil {
		return false
	}
	for p := r.Parent; p != nil; p = p.Parent {
		if fn(p) {
			return true
		}
	}
	return false
}
