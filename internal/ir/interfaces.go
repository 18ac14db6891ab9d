package ir

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type kindClass uint8

const (
	attrClass kindClass = iota
	typeClass
	opClass
)

type ifaceKey struct {
	class kindClass
	kind  string
	iface reflect.Type
}

var (
	ifaceMu sync.RWMutex
	ifaces  = make(map[ifaceKey]struct{})
)

func registerInterface(class kindClass, kind string, iface, impl reflect.Type) {
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("ir: %s is not an interface type", iface))
	}
	if !impl.Implements(iface) {
		panic(fmt.Sprintf("ir: %s (%s) does not implement %s", kind, impl, iface))
	}

	key := ifaceKey{class: class, kind: kind, iface: iface}
	ifaceMu.Lock()
	defer ifaceMu.Unlock()
	if _, dup := ifaces[key]; dup {
		panic(fmt.Sprintf("ir: %s registered twice for %s", iface, kind))
	}
	ifaces[key] = struct{}{}
}

func hasInterface(class kindClass, kind string, iface reflect.Type) bool {
	ifaceMu.RLock()
	defer ifaceMu.RUnlock()
	_, ok := ifaces[ifaceKey{class: class, kind: kind, iface: iface}]
	return ok
}

func interfacesOf(class kindClass, kind string) []string {
	ifaceMu.RLock()
	defer ifaceMu.RUnlock()
	var out []string
	for k := range ifaces {
		if k.class == class && k.kind == kind {
			out = append(out, k.iface.String())
		}
	}
	sort.Strings(out)
	return out
}

// RegisterAttrInterface declares that attribute kind id, implemented by Go
// type T, provides interface I. Call it from the dialect package's init.
// It panics if T does not implement I or the pair is already registered.
func RegisterAttrInterface[I any, T Attribute](id AttrID) {
	registerInterface(attrClass, id.String(), reflect.TypeFor[I](), reflect.TypeFor[T]())
}

// RegisterTypeInterface is RegisterAttrInterface for type kinds.
func RegisterTypeInterface[I any, T Type](id TypeID) {
	registerInterface(typeClass, id.String(), reflect.TypeFor[I](), reflect.TypeFor[T]())
}

// RegisterOpInterface is RegisterAttrInterface for op kinds.
func RegisterOpInterface[I any, T Op](id OpID) {
	registerInterface(opClass, id.String(), reflect.TypeFor[I](), reflect.TypeFor[T]())
}

// AttrCast returns a viewed through interface I if its kind registered I.
// Kinds that did not opt in yield false even if their Go type happens to
// satisfy I.
func AttrCast[I any](a Attribute) (I, bool) {
	var zero I
	if a == nil || !hasInterface(attrClass, a.AttrID().String(), reflect.TypeFor[I]()) {
		return zero, false
	}
	i, ok := any(a).(I)
	return i, ok
}

// TypeCast is AttrCast for interned types.
func TypeCast[I any](p TypePtr) (I, bool) {
	var zero I
	if p.IsNil() || !hasInterface(typeClass, p.TypeID().String(), reflect.TypeFor[I]()) {
		return zero, false
	}
	i, ok := any(p.Deref()).(I)
	return i, ok
}

// OpCast is AttrCast for ops.
func OpCast[I any](op Op) (I, bool) {
	var zero I
	if op == nil || !hasInterface(opClass, op.Operation().ID().String(), reflect.TypeFor[I]()) {
		return zero, false
	}
	i, ok := any(op).(I)
	return i, ok
}

// AttrInterfaces names the interfaces registered for attribute kind id.
func AttrInterfaces(id AttrID) []string { return interfacesOf(attrClass, id.String()) }

// TypeInterfaces names the interfaces registered for type kind id.
func TypeInterfaces(id TypeID) []string { return interfacesOf(typeClass, id.String()) }

// OpInterfaces names the interfaces registered for op kind id.
func OpInterfaces(id OpID) []string { return interfacesOf(opClass, id.String()) }
