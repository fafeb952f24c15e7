package repr

import (
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointComponent struct{}

func (pointComponent) ArraysOnly() bool      { return false }
func (pointComponent) Types() []reflect.Type { return []reflect.Type{reflect.TypeFor[Point]()} }
func (pointComponent) Render(s *State, v any) string {
	p := v.(Point)
	return "(" + s.Render(p.X) + "," + s.Render(p.Y) + ")"
}

type anyComponent struct{}

func (anyComponent) ArraysOnly() bool              { return false }
func (anyComponent) Types() []reflect.Type         { return nil }
func (anyComponent) Render(_ *State, _ any) string { return "any" }

type pointsComponent struct{}

func (pointsComponent) ArraysOnly() bool              { return true }
func (pointsComponent) Types() []reflect.Type         { return []reflect.Type{reflect.TypeFor[[]Point]()} }
func (pointsComponent) Render(_ *State, v any) string { return "points" }

type regErr struct{}

func (regErr) Error() string { return "reg error" }

func identities(components []Component) []reflect.Type {
	ids := make([]reflect.Type, len(components))
	for i, c := range components {
		ids[i] = Identity(c)
	}
	return ids
}

func TestCoreRegistry(t *testing.T) {
	r := New()
	components := r.Components()
	require.Len(t, components, len(coreComponents())+1)
	assert.Equal(t, Identity(generic), Identity(components[len(components)-1]))
}

func TestRegisterAndRemove(t *testing.T) {
	r := New()
	AssertRenderWith(t, r, Point{1, 2}, "Point{X=1, Y=2}")

	c := pointComponent{}
	require.NoError(t, r.Register(c))
	AssertRenderWith(t, r, Point{1, 2}, "(1,2)")
	AssertRenderWith(t, r, []Point{{1, 2}}, "[(1,2)]")

	require.NoError(t, r.Remove(Identity(c)))
	AssertRenderWith(t, r, Point{1, 2}, "Point{X=1, Y=2}")
}

func TestRegisterTypeRenderer(t *testing.T) {
	r := New()
	require.NoError(t, RegisterTypeRenderer(r, func(s *State, p Point) string {
		return "P" + s.Render(p.X)
	}))
	AssertRenderWith(t, r, Point{7, 0}, "P7")
	AssertRenderWith(t, r, &Point{8, 0}, "P8")

	require.NoError(t, r.Remove(Identity(TypeRenderer(func(*State, Point) string { return "" }))))
	AssertRenderWith(t, r, Point{7, 0}, "Point{X=7, Y=0}")
}

type scores []int

func TestTypeRendererClaimsNamedTypes(t *testing.T) {
	r := New()
	require.NoError(t, RegisterTypeRenderer(r, func(_ *State, v []int) string {
		return strconv.Itoa(len(v)) + " ints"
	}))
	AssertRenderWith(t, r, []int{1, 2}, "2 ints")
	AssertRenderWith(t, r, scores{1, 2, 3}, "3 ints")
}

func TestRegisterOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(pointComponent{}, anyComponent{}))

	ids := identities(r.Components())
	n := len(ids)
	assert.Equal(t, []reflect.Type{Identity(pointComponent{}), Identity(anyComponent{}), Identity(generic)}, ids[n-3:])

	// first match wins
	AssertRenderWith(t, r, Point{1, 2}, "(1,2)")
	AssertRenderWith(t, r, 5, "5")
	AssertRenderWith(t, r, struct{ A int }{1}, "any")
	AssertRenderWith(t, r, []int{1}, "[1]")

	require.NoError(t, r.Register(pointsComponent{}))
	ids = identities(r.Components())
	assert.Equal(t, Identity(pointsComponent{}), ids[len(ids)-2])
	AssertRenderWith(t, r, []Point{{1, 2}}, "points")
}

func TestRegisterTwiceIsIdempotent(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(pointComponent{}, anyComponent{}))
	before := identities(r.Components())

	require.NoError(t, r.Register(pointComponent{}))
	require.NoError(t, r.Register(anyComponent{}, pointComponent{}))
	assert.Equal(t, before, identities(r.Components()))
}

func TestCoreComponentsAreFixed(t *testing.T) {
	r := New()
	before := identities(r.Components())

	for _, c := range append(coreComponents(), generic) {
		require.NoError(t, r.Remove(Identity(c)))
		require.NoError(t, r.Register(c))
	}
	assert.Equal(t, before, identities(r.Components()))
	AssertRenderWith(t, r, regErr{}, "reg error")
}

func TestCoreComponentsComeFirst(t *testing.T) {
	r := New()
	require.NoError(t, RegisterTypeRenderer(r, func(*State, regErr) string { return "custom" }))
	AssertRenderWith(t, r, regErr{}, "reg error")
}

func TestRemoveUnknown(t *testing.T) {
	r := New()
	before := identities(r.Components())
	require.NoError(t, r.Remove(reflect.TypeFor[pointComponent]()))
	assert.Equal(t, before, identities(r.Components()))
}

func TestInvalidArguments(t *testing.T) {
	r := New()
	before := identities(r.Components())

	assert.ErrorIs(t, r.Register(nil), ErrNilComponent)
	assert.ErrorIs(t, r.Register(TypeRenderer[Point](nil)), ErrNilComponent)
	assert.ErrorIs(t, r.Register((*TableComponent)(nil)), ErrNilComponent)
	assert.ErrorIs(t, r.Register(pointComponent{}, nil), ErrNilComponent)
	assert.Equal(t, before, identities(r.Components()))

	assert.ErrorIs(t, r.Remove(nil), ErrNilType)
	assert.ErrorIs(t, r.Configure(nil, TypeConfig{}), ErrNilType)
}

func TestStateDepth(t *testing.T) {
	r := New()
	require.NoError(t, RegisterTypeRenderer(r, func(s *State, _ Point) string { return strconv.Itoa(s.Depth()) }))
	AssertRenderWith(t, r, Point{}, "0")
	AssertRenderWith(t, r, []any{[]Point{{}}}, "[[2]]")
}

func TestConfigureType(t *testing.T) {
	type configured struct {
		A int
		b int
	}
	require.NoError(t, ConfigureType(reflect.TypeFor[configured](), TypeConfig{Unexported: true}))
	AssertRender(t, configured{A: 1, b: 2}, "configured{A=1, b=2}")
	assert.ErrorIs(t, ConfigureType(nil, TypeConfig{}), ErrNilType)
}

func TestDefaultRenderer(t *testing.T) {
	type global struct{ V int }
	c := TypeRenderer(func(s *State, g global) string { return "global:" + s.Render(g.V) })
	t.Cleanup(func() { _ = RemoveComponent(Identity(c)) })

	assert.Same(t, Default(), Default())
	AssertRender(t, global{1}, "global{V=1}")
	require.NoError(t, RegisterComponent(c))
	AssertRender(t, global{1}, "global:1")
	require.NoError(t, RegisterComponents(c))
	require.NoError(t, RemoveComponent(Identity(c)))
	AssertRender(t, global{1}, "global{V=1}")
}

func TestConcurrentRegistration(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = r.Register(pointComponent{})
				_ = r.Remove(Identity(pointComponent{}))
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				got := r.Render(Point{1, 2})
				assert.Contains(t, []string{"(1,2)", "Point{X=1, Y=2}"}, got)
			}
		}()
	}
	wg.Wait()

	ids := identities(r.Components())
	assert.Equal(t, Identity(generic), ids[len(ids)-1])
}
