package repr

import (
	"io"
	"reflect"
	"sync"
)

var (
	defaultRenderer *Renderer
	defaultOnce     sync.Once
)

// Default returns the process-wide renderer used by the package level
// functions, building it on first use.
func Default() *Renderer {
	defaultOnce.Do(func() {
		defaultRenderer = New()
	})
	return defaultRenderer
}

func Render(value any) string {
	return Default().Render(value)
}

func RenderVerbose(value any, verbose bool) string {
	return Default().RenderVerbose(value, verbose)
}

func Write(w io.Writer, value any) error {
	return Default().Write(w, value)
}

func RegisterComponent(c Component) error {
	return Default().Register(c)
}

func RegisterComponents(components ...Component) error {
	return Default().Register(components...)
}

func RemoveComponent(id reflect.Type) error {
	return Default().Remove(id)
}

func ConfigureType(t reflect.Type, cfg TypeConfig) error {
	return Default().Configure(t, cfg)
}
