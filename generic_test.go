package repr

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	First, Last string
}

func (p person) FullName() string          { return p.First + " " + p.Last }
func (p *person) IsAdult() bool            { return true }
func (p person) Fail() (string, error)     { return "", errors.New("nope") }
func (p person) Panic() string             { panic("boom") }
func (p person) Add(n int) int             { return n }
func (p person) Touch()                    {}
func (p person) Pair() (string, string)    { return p.First, p.Last }
func (p person) Hash() int                 { return 1 }
func (p person) Nickname() (string, error) { return "ada", nil }

type statusErr struct{ code int }

func (e *statusErr) Error() string { return "status " + strconv.Itoa(e.code) }

type job struct {
	ID int
}

func (j job) Status() (int, error) {
	var err *statusErr
	return 1, err
}

type secret struct {
	user string
	pass string `repr:"exclude"`
}

type Base struct {
	ID int
}

type Derived struct {
	Base
	Name string
}

type Shadow struct {
	Base
	ID string
}

type WithPtr struct {
	*Base
	N int
}

type hidden struct {
	Visible int
	inner   int
}

type WithHidden struct {
	hidden
}

type left struct{ ID int }
type right struct{ ID int }

type Ambiguous struct {
	left
	right
	Name string
}

type node struct {
	Name string
	Next *node
}

type list struct {
	V    int
	Next *list
}

func TestGetters(t *testing.T) {
	r := New()
	p := person{First: "Ada", Last: "Lovelace"}
	AssertRenderWith(t, r, p, "person{First=Ada, Last=Lovelace}")

	require.NoError(t, Configure[person](r, TypeConfig{Getters: true}))
	AssertRenderWith(t, r, p, "person{First=Ada, Last=Lovelace, FullName()=Ada Lovelace, IsAdult()=<true>, Nickname()=ada}")
	AssertRenderWith(t, r, &p, "person{First=Ada, Last=Lovelace, FullName()=Ada Lovelace, IsAdult()=<true>, Nickname()=ada}")

	require.NoError(t, Configure[person](r, TypeConfig{Getters: true, GetterPrefixes: []string{"Is"}}))
	AssertRenderWith(t, r, p, "person{First=Ada, Last=Lovelace, IsAdult()=<true>}")

	require.NoError(t, Configure[person](r, TypeConfig{Getters: true, GetterSuffixes: []string{"Name"}, Exclude: []string{"Last"}}))
	AssertRenderWith(t, r, p, "person{First=Ada, FullName()=Ada Lovelace}")

	require.NoError(t, Configure[person](r, TypeConfig{Getters: true, Exclude: []string{"FullName", "Nickname", "First", "Last"}}))
	AssertRenderWith(t, r, p, "person{IsAdult()=<true>}")
}

func TestGetterReturningTypedNilError(t *testing.T) {
	r := New(WithLogger(testr.NewWithOptions(t, testr.Options{Verbosity: 3})))
	require.NoError(t, Configure[job](r, TypeConfig{Getters: true}))
	AssertRenderWith(t, r, job{ID: 7}, "job{ID=7}")
}

func TestUnexportedFields(t *testing.T) {
	r := New()
	s := secret{user: "bob", pass: "hunter2"}
	AssertRenderWith(t, r, s, "secret{}")

	require.NoError(t, Configure[secret](r, TypeConfig{Unexported: true}))
	AssertRenderWith(t, r, s, "secret{user=bob}")
	AssertRenderWith(t, r, &s, "secret{user=bob}")
	AssertRenderWith(t, r, []secret{s}, "[secret{user=bob}]")
}

func TestEmbedding(t *testing.T) {
	r := New()
	d := Derived{Base: Base{ID: 1}, Name: "x"}
	AssertRenderWith(t, r, d, "Derived{ID=1, Name=x}")
	AssertRenderWith(t, r, Shadow{Base: Base{ID: 1}, ID: "outer"}, "Shadow{ID=outer}")
	AssertRenderWith(t, r, WithPtr{N: 1}, "WithPtr{N=1}")
	AssertRenderWith(t, r, WithPtr{Base: &Base{ID: 2}, N: 1}, "WithPtr{ID=2, N=1}")
	AssertRenderWith(t, r, WithHidden{hidden{Visible: 1, inner: 2}}, "WithHidden{Visible=1}")
	AssertRenderWith(t, r, Ambiguous{left{1}, right{2}, "x"}, "Ambiguous{Name=x}")

	require.NoError(t, Configure[Derived](r, TypeConfig{DeclaredOnly: true}))
	AssertRenderWith(t, r, d, "Derived{Base=Base{ID=1}, Name=x}")
}

func TestConfigInheritedThroughEmbedding(t *testing.T) {
	r := New()
	require.NoError(t, Configure[Base](r, TypeConfig{QualifiedName: true}))
	AssertRenderWith(t, r, Derived{Base: Base{ID: 1}, Name: "x"}, "github.com/tipee-sa/repr.Derived{ID=1, Name=x}")
	AssertRenderWith(t, r, Base{ID: 1}, "github.com/tipee-sa/repr.Base{ID=1}")

	require.NoError(t, Configure[Derived](r, TypeConfig{}))
	AssertRenderWith(t, r, Derived{Base: Base{ID: 1}, Name: "x"}, "Derived{ID=1, Name=x}")

	info := r.info(reflect.TypeFor[Derived]())
	assert.Equal(t, []string{"Derived", "Base"}, typeNames(info.chain))
}

func TestDefaults(t *testing.T) {
	r := New(WithDefaults(TypeConfig{Unexported: true}))
	AssertRenderWith(t, r, secret{user: "bob"}, "secret{user=bob}")
}

func TestCycles(t *testing.T) {
	// spew cannot dump self-referencing maps, compare without it
	a := &node{Name: "a"}
	b := &node{Name: "b", Next: a}
	a.Next = b
	assert.Equal(t, "node{Name=a, Next=node{Name=b, Next=<cycle node>}}", Render(a))

	m := map[string]any{}
	m["self"] = m
	assert.Equal(t, "{self=<cycle map[string]interface {}>}", Render(m))

	s := []any{nil}
	s[0] = s
	assert.Equal(t, "[<cycle []interface {}>]", Render(s))
}

func TestSharedReferencesAreNotCycles(t *testing.T) {
	type pair struct {
		A, B *Point
	}
	p := &Point{1, 2}
	AssertRender(t, pair{p, p}, "pair{A=Point{X=1, Y=2}, B=Point{X=1, Y=2}}")
}

func TestMaxDepth(t *testing.T) {
	r := New(WithMaxDepth(3))
	l := list{V: 1, Next: &list{V: 2, Next: &list{V: 3}}}
	AssertRenderWith(t, r, l, "list{V=1, Next=list{V=2, Next=<...>}}")

	deep := New()
	AssertRenderWith(t, deep, l, "list{V=1, Next=list{V=2, Next=list{V=3, Next=<null>}}}")
}

func typeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return names
}
