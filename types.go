package repr

import (
	"reflect"
)

type RenderFn[T any] func(s *State, v T) string

type typeRenderer[T any] struct {
	fn RenderFn[T]
}

// TypeRenderer returns a component rendering values assignable to T with
// fn. Its identity depends on T only. It returns nil when fn is nil.
func TypeRenderer[T any](fn RenderFn[T]) Component {
	if fn == nil {
		return nil
	}
	return &typeRenderer[T]{fn: fn}
}

func (c *typeRenderer[T]) ArraysOnly() bool {
	k := reflect.TypeFor[T]().Kind()
	return k == reflect.Slice || k == reflect.Array
}

func (c *typeRenderer[T]) Types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[T]()}
}

func (c *typeRenderer[T]) Render(s *State, v any) string {
	t, ok := v.(T)
	if !ok {
		// unnamed T claims named types sharing its underlying type
		t = reflect.ValueOf(v).Convert(reflect.TypeFor[T]()).Interface().(T)
	}
	return c.fn(s, t)
}

func RegisterTypeRenderer[T any](r *Renderer, fn RenderFn[T]) error {
	return r.Register(TypeRenderer(fn))
}
