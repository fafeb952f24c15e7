package repr

import (
	"reflect"
	"slices"
	"strings"
)

const tagName = "repr"

type memberKind int

const (
	fieldMember memberKind = iota
	methodMember
)

// member describes a struct field or a method, as seen by the filters.
type member struct {
	kind      memberKind
	name      string
	typ       reflect.Type // field type, or method type without receiver
	index     []int        // field index path, or method index
	depth     int          // embedding depth of a field, 0 when declared
	exported  bool
	embedded  bool
	excluded  bool
	omitEmpty bool
}

type memberFilter func(m member) bool

// allOf combines filters with a logical AND, in order.
func allOf(filters ...memberFilter) memberFilter {
	return func(m member) bool {
		for _, f := range filters {
			if !f(m) {
				return false
			}
		}
		return true
	}
}

func fieldFilters(cfg TypeConfig) []memberFilter {
	return []memberFilter{
		isKind(fieldMember),
		visible(cfg.Unexported),
		declaredOrPromoted(cfg.DeclaredOnly),
		notExcluded,
	}
}

func getterFilters(cfg TypeConfig) []memberFilter {
	return []memberFilter{
		isKind(methodMember),
		visible(false),
		noArguments,
		returnsValue,
		nameMatches(cfg.GetterPrefixes, cfg.GetterSuffixes),
		notUniversal,
		notExcluded,
	}
}

func isKind(kind memberKind) memberFilter {
	return func(m member) bool { return m.kind == kind }
}

func visible(unexported bool) memberFilter {
	return func(m member) bool { return unexported || m.exported }
}

// declaredOrPromoted keeps either the embedded structs themselves
// (declaredOnly) or the fields they promote.
func declaredOrPromoted(declaredOnly bool) memberFilter {
	return func(m member) bool {
		if declaredOnly {
			return m.depth == 0
		}
		return !m.embedded || indirect(m.typ).Kind() != reflect.Struct
	}
}

func notExcluded(m member) bool { return !m.excluded }

func noArguments(m member) bool { return m.typ.NumIn() == 0 }

func returnsValue(m member) bool {
	switch m.typ.NumOut() {
	case 1:
		return true
	case 2:
		return m.typ.Out(1) == errorType
	}
	return false
}

func nameMatches(prefixes, suffixes []string) memberFilter {
	return func(m member) bool {
		if len(prefixes) == 0 && len(suffixes) == 0 {
			return true
		}
		for _, p := range prefixes {
			if strings.HasPrefix(m.name, p) {
				return true
			}
		}
		for _, s := range suffixes {
			if strings.HasSuffix(m.name, s) {
				return true
			}
		}
		return false
	}
}

// universalMethods are never treated as getters.
var universalMethods = map[string]bool{
	"Equal": true, "String": true, "GoString": true, "Error": true, "Format": true,
	"Hash": true, "HashCode": true, "Type": true, "TypeName": true,
	"Clone": true, "Copy": true, "Close": true, "Reset": true,
	"MarshalJSON": true, "MarshalText": true, "MarshalYAML": true, "MarshalBinary": true,
}

func notUniversal(m member) bool { return !universalMethods[m.name] }

// collectFields lists the fields of struct type t passing the field
// filters, flattening embedded structs unless cfg.DeclaredOnly. A promoted
// field is hidden by a shallower field of the same name, and dropped when
// another field of that name sits at the same depth.
func collectFields(t reflect.Type, cfg TypeConfig) []member {
	var candidates []member
	var walk func(t reflect.Type, index []int, depth int, seen map[reflect.Type]bool)
	walk = func(t reflect.Type, index []int, depth int, seen map[reflect.Type]bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			m := fieldDescriptor(f, append(slices.Clip(index), i), depth, cfg)
			candidates = append(candidates, m)

			ft := indirect(f.Type)
			if f.Anonymous && !cfg.DeclaredOnly && !m.excluded && ft.Kind() == reflect.Struct && !seen[ft] {
				seen[ft] = true
				walk(ft, m.index, depth+1, seen)
				delete(seen, ft)
			}
		}
	}
	walk(t, nil, 0, map[reflect.Type]bool{t: true})

	keep := allOf(fieldFilters(cfg)...)
	shallowest := make(map[string]int)
	for _, m := range candidates {
		if d, ok := shallowest[m.name]; !ok || m.depth < d {
			shallowest[m.name] = m.depth
		}
	}
	// a name promoted twice at its shallowest depth is ambiguous, as in Go
	count := make(map[string]int)
	for _, m := range candidates {
		if m.depth == shallowest[m.name] {
			count[m.name]++
		}
	}

	var fields []member
	for _, m := range candidates {
		if m.depth != shallowest[m.name] || count[m.name] > 1 {
			continue
		}
		if keep(m) {
			fields = append(fields, m)
		}
	}
	return fields
}

func fieldDescriptor(f reflect.StructField, index []int, depth int, cfg TypeConfig) member {
	m := member{
		kind:     fieldMember,
		name:     f.Name,
		typ:      f.Type,
		index:    index,
		depth:    depth,
		exported: f.IsExported(),
		embedded: f.Anonymous,
		excluded: slices.Contains(cfg.Exclude, f.Name),
	}
	for _, opt := range strings.Split(f.Tag.Get(tagName), ",") {
		switch strings.TrimSpace(opt) {
		case "-", "exclude":
			m.excluded = true
		case "omitempty":
			m.omitEmpty = true
		}
	}
	return m
}

// collectGetters lists the methods of t passing the getter filters.
func collectGetters(t reflect.Type, cfg TypeConfig) []member {
	keep := allOf(getterFilters(cfg)...)
	var getters []member
	for i := range t.NumMethod() {
		method := t.Method(i)
		m := member{
			kind:     methodMember,
			name:     method.Name,
			typ:      methodSignature(method.Type),
			index:    []int{i},
			exported: method.IsExported(),
			excluded: slices.Contains(cfg.Exclude, method.Name),
		}
		if keep(m) {
			getters = append(getters, m)
		}
	}
	return getters
}

// methodSignature drops the receiver from the type of a method value
// obtained through reflect.Type.Method.
func methodSignature(t reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, t.NumIn()-1)
	for i := 1; i < t.NumIn(); i++ {
		in = append(in, t.In(i))
	}
	out := make([]reflect.Type, 0, t.NumOut())
	for i := range t.NumOut() {
		out = append(out, t.Out(i))
	}
	return reflect.FuncOf(in, out, t.IsVariadic())
}
