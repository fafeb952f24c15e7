// Package repr renders arbitrary Go values as deterministic, human-readable
// text.
//
// A render goes through three stages. A fixed table of special cases
// handles nil, booleans and predeclared scalars. Then an ordered registry of
// [Component] values is scanned for the first one claiming the value's
// runtime type and shape (slice/array or not). The registry always ends with
// a generic reflective formatter, which prints structs as
//
//	Point{X=1, Y=2}
//
// rendering every nested value through the same dispatcher.
//
// Components can be added and removed at runtime:
//
//	repr.RegisterComponent(repr.TypeRenderer(func(s *repr.State, u User) string {
//		return "user:" + u.Login
//	}))
//
// Registration is copy-on-write: renders running concurrently observe the
// registry either before or after the change, never a partial one. The core
// components (self rendering through [Reprer], time.Time, time.Duration,
// error, reflect.Type and the generic formatter) can be neither removed nor
// registered twice.
//
// The generic formatter is tuned per type with [TypeConfig]: qualified type
// names, unexported fields, getter methods, flattening of embedded structs
// and member exclusion. Fields are excluded with the struct tag
//
//	Password string `repr:"exclude"`
//
// Configuration of a type is inherited by the types embedding it, unless
// they carry their own.
//
// Package level functions use a lazily built process-wide [Renderer]; use
// [New] for an isolated instance.
package repr
