// Package bindery is the binding registry of a dependency-injection
// container.
//
// A Kernel records, for each service identifier, the bindings that can
// satisfy it, in registration order:
//
//	k := bindery.New()
//	k.MustBind("Warrior").To(reflect.TypeOf(Ninja{})).InSingletonScope()
//	k.MustBind("Warrior").ToConstantValue(&Samurai{}).WhenTargetNamed("master")
//
//	bindings, err := k.Bindings("Warrior") // both, Ninja first
//
// Bindings can be grouped in modules and unloaded together, saved with
// Snapshot and brought back with Restore, and copied into an independent
// kernel with Merge.
//
// The kernel stores candidates only. Choosing a binding for a request,
// producing values and caching them by scope belong to the resolver.
package bindery
