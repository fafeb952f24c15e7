package repr

import (
	"reflect"
	"slices"
)

// registry is an immutable snapshot of the components in dispatch order.
// The last component is always the generic fallback.
type registry struct {
	components []Component
	core       map[reflect.Type]struct{}
}

func newRegistry(core []Component, fallback Component) *registry {
	g := &registry{
		components: make([]Component, 0, len(core)+1),
		core:       make(map[reflect.Type]struct{}, len(core)+1),
	}
	for _, c := range append(slices.Clip(core), fallback) {
		g.components = append(g.components, c)
		g.core[Identity(c)] = struct{}{}
	}
	return g
}

func (g *registry) isCore(id reflect.Type) bool {
	_, ok := g.core[id]
	return ok
}

func (g *registry) index(id reflect.Type) int {
	return slices.IndexFunc(g.components, func(c Component) bool { return Identity(c) == id })
}

// with returns a copy of g with c inserted just before the fallback.
func (g *registry) with(c Component) *registry {
	last := len(g.components) - 1
	components := make([]Component, 0, len(g.components)+1)
	components = append(components, g.components[:last]...)
	components = append(components, c, g.components[last])
	return &registry{components: components, core: g.core}
}

// without returns a copy of g without the component at index i.
func (g *registry) without(i int) *registry {
	components := make([]Component, 0, len(g.components)-1)
	components = append(components, g.components[:i]...)
	components = append(components, g.components[i+1:]...)
	return &registry{components: components, core: g.core}
}

// lookup returns the first component claiming a value of type t. The
// fallback claims every value.
func (g *registry) lookup(t reflect.Type, array bool) Component {
	last := len(g.components) - 1
	for i, c := range g.components {
		if i == last || (c.ArraysOnly() == array && supports(c.Types(), t)) {
			return c
		}
	}
	return nil
}

func supports(types []reflect.Type, t reflect.Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, st := range types {
		if st == t || t.AssignableTo(st) {
			return true
		}
	}
	return false
}
