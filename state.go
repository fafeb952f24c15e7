package repr

import (
	"reflect"
	"unsafe"

	"github.com/mattn/go-runewidth"
)

const (
	nullText      = "<null>"
	truncatedText = "<...>"
)

type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// State carries one render call through the nested values it visits.
// Components receive it and must use Render for every nested value.
type State struct {
	r        *Renderer
	verbose  bool
	depth    int
	visiting map[visitKey]struct{}
}

func (r *Renderer) newState(verbose bool) *State {
	return &State{r: r, verbose: verbose}
}

// Verbose reports whether the current render was requested as verbose.
func (s *State) Verbose() bool { return s.verbose }

// Depth is the nesting level of the value being rendered, 0 at the root.
func (s *State) Depth() int { return s.depth }

// Render renders a nested value through the dispatcher. Values other than
// nil and scalars nested deeper than the renderer's maximum depth render as
// "<...>".
func (s *State) Render(v any) string {
	s.depth++
	defer func() { s.depth-- }()
	return s.r.dispatch(s, v)
}

// Fallback renders v with the generic formatter, skipping the registry.
func (s *State) Fallback(v any) string {
	return generic.format(s, reflect.ValueOf(v))
}

// TypeName returns the short or qualified name of t, depending on the
// verbosity of the render and the configuration of t.
func (s *State) TypeName(t reflect.Type) string {
	return typeName(t, s.verbose || s.r.info(t).config.QualifiedName)
}

// enter marks a reference value as being rendered. It reports false when the
// value is already on the current path.
func (s *State) enter(v reflect.Value) (leave func(), ok bool) {
	key := visitKey{typ: v.Type(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		key.len = v.Len()
	}
	if key.ptr == 0 {
		return func() {}, true
	}
	if _, seen := s.visiting[key]; seen {
		s.r.log.V(2).Info("cycle detected, truncating", "type", v.Type().String())
		return nil, false
	}
	if s.visiting == nil {
		s.visiting = make(map[visitKey]struct{})
	}
	s.visiting[key] = struct{}{}
	return func() { delete(s.visiting, key) }, true
}

func (s *State) truncate(text string) string {
	limit := s.r.opts.maxWidth
	if limit <= 0 || runewidth.StringWidth(text) <= limit {
		return text
	}
	return runewidth.Truncate(text, limit, "...")
}

func cycleText(t reflect.Type) string {
	return "<cycle " + typeName(t, false) + ">"
}

func typeName(t reflect.Type, qualified bool) string {
	if t.Name() == "" {
		return t.String()
	}
	if qualified && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.Name()
}

// addressable returns v itself when it is addressable, or an addressable
// copy otherwise.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// accessible returns a value whose Interface method can be called, reading
// unexported fields through their address.
func accessible(v reflect.Value) (reflect.Value, bool) {
	if v.CanInterface() {
		return v, true
	}
	if !v.CanAddr() {
		return reflect.Value{}, false
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), true
}
