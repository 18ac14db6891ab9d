// Package dialects is the catalogue of dialects a session can load by name.
package dialects

import (
	"sort"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects/builtin"
	"github.com/roach88/irkit/internal/dialects/llvm"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
)

// RegisterFunc installs a dialect, and whatever it depends on, into a
// context.
type RegisterFunc func(*ir.Context)

var catalogue = map[ir.DialectName]RegisterFunc{
	builtin.Name: builtin.Register,
	llvm.Name:    llvm.Register,
}

// Names lists the known dialects in sorted order.
func Names() []ir.DialectName {
	names := make([]ir.DialectName, 0, len(catalogue))
	for n := range catalogue {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup finds a dialect's register function.
func Lookup(name ir.DialectName) (RegisterFunc, bool) {
	f, ok := catalogue[name]
	return f, ok
}

// RegisterAll installs the named dialects into ctx. Every name is checked
// before anything is registered.
func RegisterAll(ctx *ir.Context, names []ir.DialectName) error {
	fns := make([]RegisterFunc, 0, len(names))
	for _, n := range names {
		f, ok := Lookup(n)
		if !ok {
			return diag.ArgErr(location.Unknown, "Unknown dialect %s", n)
		}
		fns = append(fns, f)
	}
	for _, f := range fns {
		f(ctx)
	}
	return nil
}
