package repr

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// generic is the terminal component of every registry.
var generic = genericComponent{}

type genericComponent struct{}

func (genericComponent) ArraysOnly() bool      { return false }
func (genericComponent) Types() []reflect.Type { return nil }

func (g genericComponent) Render(s *State, v any) string {
	return g.format(s, reflect.ValueOf(v))
}

func (genericComponent) format(s *State, v reflect.Value) string {
	if isAbsent(s, v) {
		return nullText
	}

	info := s.r.info(v.Type())
	if info.kind == enumKind {
		return enumName(s, v)
	}

	switch v.Kind() {
	case reflect.Pointer:
		return formatPointer(s, v)
	case reflect.Interface:
		return s.Render(v.Elem().Interface())
	case reflect.Struct:
		return formatStruct(s, v, info)
	case reflect.Map:
		return formatMap(s, v, info)
	case reflect.Slice, reflect.Array:
		return formatList(s, v, info)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "<" + v.Type().String() + ">"
	}
	return formatScalar(s, v)
}

func enumName(s *State, v reflect.Value) (name string) {
	defer func() {
		if p := recover(); p != nil {
			s.r.log.V(1).Info("enum String panicked", "type", v.Type().String(), "panic", fmt.Sprint(p))
			name = formatScalar(s, v)
		}
	}()
	return v.Interface().(fmt.Stringer).String()
}

func formatPointer(s *State, v reflect.Value) string {
	leave, ok := s.enter(v)
	if !ok {
		return cycleText(v.Type().Elem())
	}
	defer leave()
	return s.Render(v.Elem().Interface())
}

func formatStruct(s *State, v reflect.Value, info *typeInfo) string {
	v = addressable(v)

	var b strings.Builder
	if v.Type().Name() != "" {
		b.WriteString(typeName(v.Type(), s.verbose || info.config.QualifiedName))
	}
	b.WriteByte('{')

	n := 0
	sep := func() {
		if n > 0 {
			b.WriteString(", ")
		}
		n++
	}
	for _, f := range info.fields {
		fv, ok := fieldValue(v, f.index)
		if !ok {
			s.r.log.V(1).Info("field not accessible, omitting", "type", v.Type().String(), "field", f.name)
			continue
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		sep()
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(s.Render(fv.Interface()))
	}
	for _, m := range info.getters {
		out, err := callGetter(v.Addr().Method(m.index[0]))
		if err != nil {
			s.r.log.V(1).Info("getter failed, omitting", "type", v.Type().String(), "method", m.name, "error", err)
			continue
		}
		sep()
		b.WriteString(m.name)
		b.WriteString("()=")
		b.WriteString(s.Render(out.Interface()))
	}

	b.WriteByte('}')
	return b.String()
}

// fieldValue reads the field at index from the addressable struct v. It
// fails when the path goes through a nil embedded pointer.
func fieldValue(v reflect.Value, index []int) (reflect.Value, bool) {
	fv, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	return accessible(fv)
}

func callGetter(method reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	results := method.Call(nil)
	if len(results) == 2 && !results[1].IsNil() {
		// %v survives typed nil errors whose Error dereferences the receiver
		return reflect.Value{}, fmt.Errorf("returned error: %v", results[1].Interface())
	}
	return results[0], nil
}

func formatMap(s *State, v reflect.Value, info *typeInfo) string {
	leave, ok := s.enter(v)
	if !ok {
		return cycleText(v.Type())
	}
	defer leave()

	type entry struct{ key, value string }
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   s.Render(iter.Key().Interface()),
			value: s.Render(iter.Value().Interface()),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.value, b.value))
	})

	var b strings.Builder
	b.WriteString(namedPrefix(s, v.Type(), info))
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	b.WriteByte('}')
	return b.String()
}

func formatList(s *State, v reflect.Value, info *typeInfo) string {
	if v.Kind() == reflect.Slice {
		leave, ok := s.enter(v)
		if !ok {
			return cycleText(v.Type())
		}
		defer leave()
	}

	var b strings.Builder
	b.WriteString(namedPrefix(s, v.Type(), info))
	b.WriteByte('[')
	for i := range v.Len() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Render(v.Index(i).Interface()))
	}
	b.WriteByte(']')
	return b.String()
}

// namedPrefix names the container types declared by the program; literal
// map and slice types render without a name.
func namedPrefix(s *State, t reflect.Type, info *typeInfo) string {
	if t.Name() == "" {
		return ""
	}
	return typeName(t, s.verbose || info.config.QualifiedName)
}
