package repr

import (
	"reflect"
	"time"
)

// Component renders the values it claims.
//
// A component claims a value when ArraysOnly matches whether the value is a
// slice or an array, and the value's runtime type is assignable to one of
// Types. An empty Types claims every type. Components are identified by
// their concrete type: registering a second component of the same type is
// a no-op.
type Component interface {
	ArraysOnly() bool
	Types() []reflect.Type
	Render(s *State, v any) string
}

// Identity returns the identity under which c is registered, to be passed
// to Remove.
func Identity(c Component) reflect.Type {
	return reflect.TypeOf(c)
}

// Reprer is implemented by values rendering themselves.
type Reprer interface {
	Repr(s *State) string
}

var (
	reprerType   = reflect.TypeFor[Reprer]()
	errorType    = reflect.TypeFor[error]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	typeType     = reflect.TypeFor[reflect.Type]()
)

func coreComponents() []Component {
	return []Component{
		reprerComponent{},
		timeComponent{},
		durationComponent{},
		errorComponent{},
		typeComponent{},
	}
}

type reprerComponent struct{}

func (reprerComponent) ArraysOnly() bool      { return false }
func (reprerComponent) Types() []reflect.Type { return []reflect.Type{reprerType} }
func (reprerComponent) Render(s *State, v any) string {
	return v.(Reprer).Repr(s)
}

type timeComponent struct{}

func (timeComponent) ArraysOnly() bool      { return false }
func (timeComponent) Types() []reflect.Type { return []reflect.Type{timeType} }
func (timeComponent) Render(s *State, v any) string {
	if s.Verbose() {
		return v.(time.Time).Format(time.RFC3339Nano)
	}
	return v.(time.Time).Format(time.RFC3339)
}

type durationComponent struct{}

func (durationComponent) ArraysOnly() bool      { return false }
func (durationComponent) Types() []reflect.Type { return []reflect.Type{durationType} }
func (durationComponent) Render(_ *State, v any) string {
	return v.(time.Duration).String()
}

type errorComponent struct{}

func (errorComponent) ArraysOnly() bool      { return false }
func (errorComponent) Types() []reflect.Type { return []reflect.Type{errorType} }
func (errorComponent) Render(s *State, v any) string {
	return s.truncate(v.(error).Error())
}

type typeComponent struct{}

func (typeComponent) ArraysOnly() bool      { return false }
func (typeComponent) Types() []reflect.Type { return []reflect.Type{typeType} }
func (typeComponent) Render(s *State, v any) string {
	return typeName(v.(reflect.Type), s.Verbose())
}
