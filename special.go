package repr

import (
	"reflect"
	"strconv"
)

// Char is a single character. It renders single quoted: 'c'.
type Char rune

var (
	charType   = reflect.TypeFor[Char]()
	runeType   = reflect.TypeFor[rune]()
	objectType = reflect.TypeFor[struct{}]()
)

type specialCase struct {
	name   string
	match  func(s *State, v reflect.Value) bool
	format func(s *State, v reflect.Value) string
}

// specialCases run before any registry lookup, first match wins. The table
// is filled in init: the object case reaches back into dispatch.
var specialCases []specialCase

func init() {
	specialCases = []specialCase{
		{name: "absent", match: isAbsent, format: func(*State, reflect.Value) string { return nullText }},
		{name: "bool", match: isBool, format: formatScalar},
		{name: "char", match: isChar, format: formatChar},
		{name: "primitive", match: isPrimitive, format: formatScalar},
		{name: "object", match: isObject, format: func(s *State, v reflect.Value) string { return generic.format(s, v) }},
	}
}

func isAbsent(_ *State, v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// predeclared reports whether t is one of the language's predeclared types,
// as opposed to a named type built on top of one.
func predeclared(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() == ""
}

func isBool(_ *State, v reflect.Value) bool {
	return v.Kind() == reflect.Bool && predeclared(v.Type())
}

func isChar(s *State, v reflect.Value) bool {
	t := v.Type()
	return t == charType || (s.r.opts.runeAsChar && t == runeType)
}

func isPrimitive(_ *State, v reflect.Value) bool {
	return predeclared(v.Type()) && scalarKind(v.Kind())
}

func isObject(_ *State, v reflect.Value) bool {
	return v.Type() == objectType
}

func scalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String, reflect.Uintptr,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func formatChar(_ *State, v reflect.Value) string {
	return "'" + string(rune(v.Int())) + "'"
}

// formatScalar renders any value of a scalar kind, named or not.
func formatScalar(s *State, v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "<true>"
		}
		return "<false>"
	case reflect.String:
		return s.truncate(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	}
	return "<" + v.Type().String() + ">"
}
