package repr

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
)

var (
	ErrNilComponent  = errors.New("repr: nil component")
	ErrNilType       = errors.New("repr: nil type")
	ErrInvalidConfig = errors.New("repr: invalid config")
)

// Renderer dispatches values to the special cases and to its registry of
// components. It is safe for concurrent use.
type Renderer struct {
	opts options
	log  logr.Logger

	mu       sync.Mutex // serializes registry and config mutations
	registry atomic.Pointer[registry]
	configs  atomic.Pointer[configTable]
}

func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	r := &Renderer{opts: o, log: o.log.WithName("repr")}
	r.registry.Store(newRegistry(coreComponents(), generic))
	r.configs.Store(newConfigTable(o.defaults, o.types))
	return r
}

func (r *Renderer) Render(value any) string {
	return r.RenderVerbose(value, false)
}

func (r *Renderer) RenderVerbose(value any, verbose bool) string {
	return r.dispatch(r.newState(verbose), value)
}

// Write renders value to w, followed by a newline.
func (r *Renderer) Write(w io.Writer, value any) error {
	_, err := fmt.Fprintln(w, r.Render(value))
	return err
}

func (r *Renderer) dispatch(s *State, value any) string {
	v := reflect.ValueOf(value)
	for _, sc := range specialCases {
		if sc.match(s, v) {
			r.log.V(3).Info("special case matched", "case", sc.name)
			return sc.format(s, v)
		}
	}

	if s.depth > r.opts.maxDepth {
		return truncatedText
	}

	k := v.Kind()
	if c := r.registry.Load().lookup(v.Type(), k == reflect.Slice || k == reflect.Array); c != nil {
		return c.Render(s, value)
	}
	return fmt.Sprint(value)
}

// Register adds components just before the generic fallback, after the
// components registered earlier. Components whose identity is a core
// component or already registered are ignored. A nil component fails the
// whole call and registers nothing.
func (r *Renderer) Register(components ...Component) error {
	for i, c := range components {
		if isNilComponent(c) {
			return fmt.Errorf("%w: argument %d", ErrNilComponent, i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg := r.registry.Load()
	for _, c := range components {
		id := Identity(c)
		if reg.index(id) >= 0 {
			r.log.V(1).Info("component already registered, ignoring", "component", id.String(), "core", reg.isCore(id))
			continue
		}
		reg = reg.with(c)
		r.log.V(1).Info("component registered", "component", id.String())
	}
	r.registry.Store(reg)
	return nil
}

// Remove removes the component registered under id, as returned by
// Identity. Core components and unknown identities are ignored.
func (r *Renderer) Remove(id reflect.Type) error {
	if id == nil {
		return ErrNilType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg := r.registry.Load()
	if reg.isCore(id) {
		r.log.V(1).Info("core component cannot be removed, ignoring", "component", id.String())
		return nil
	}
	i := reg.index(id)
	if i < 0 {
		r.log.V(1).Info("component not registered, ignoring", "component", id.String())
		return nil
	}
	r.registry.Store(reg.without(i))
	r.log.V(1).Info("component removed", "component", id.String())
	return nil
}

// Components returns the components in dispatch order.
func (r *Renderer) Components() []Component {
	components := r.registry.Load().components
	out := make([]Component, len(components))
	copy(out, components)
	return out
}

// Configure sets the configuration of t and of the types embedding it
// without a configuration of their own.
func (r *Renderer) Configure(t reflect.Type, cfg TypeConfig) error {
	if t == nil {
		return ErrNilType
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs.Store(r.configs.Load().with(t, cfg))
	return nil
}

// Configure sets the configuration of T on r.
func Configure[T any](r *Renderer, cfg TypeConfig) error {
	return r.Configure(reflect.TypeFor[T](), cfg)
}

func (r *Renderer) info(t reflect.Type) *typeInfo {
	return r.configs.Load().info(t)
}

func isNilComponent(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
