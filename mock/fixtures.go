package mock

import (
	"context"
	"errors"

	"github.com/centraunit/bindery/binding"
)

// Service identifiers shared by the test suites.
var (
	WarriorID = "Warrior"
	WeaponID  = binding.NewToken("Weapon")
	ShieldID  = binding.TypeOf[Shield]()
)

// Core interfaces
type Warrior interface {
	Fight() string
}

type Weapon interface {
	Use() string
}

type Shield interface {
	Block() bool
}

// Mock implementations
type Ninja struct {
	Weapon Weapon
}

func (n *Ninja) Fight() string {
	if n.Weapon == nil {
		return "punch!"
	}
	return n.Weapon.Use()
}

type Samurai struct {
	Weapon Weapon
}

func (s *Samurai) Fight() string {
	if s.Weapon == nil {
		return "bow"
	}
	return "banzai " + s.Weapon.Use()
}

type Katana struct{}

func (k *Katana) Use() string { return "cut!" }

type Shuriken struct {
	Thrown int
}

func (s *Shuriken) Use() string {
	s.Thrown++
	return "hit!"
}

type Buckler struct{}

func (b *Buckler) Block() bool { return true }

// Entry is a minimal lookup value used to exercise the multimap without
// bindings.
type Entry struct {
	Name   string
	Module string
	Clones int
}

func (e *Entry) Clone() *Entry {
	return &Entry{Name: e.Name, Module: e.Module, Clones: e.Clones + 1}
}

func (e *Entry) ModuleID() string { return e.Module }

// Names returns the entry names in order.
func Names(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

// ErrNotRegistered is returned by Resolver for unknown identifiers.
var ErrNotRegistered = errors.New("mock: service not registered")

// Resolver is a map backed binding.Resolver that records every lookup.
type Resolver struct {
	Values map[any]any
	Calls  []any
}

func (r *Resolver) Get(_ context.Context, serviceIdentifier any) (any, error) {
	r.Calls = append(r.Calls, serviceIdentifier)
	v, ok := r.Values[serviceIdentifier]
	if !ok {
		return nil, ErrNotRegistered
	}
	return v, nil
}
