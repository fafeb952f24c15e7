package repr

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// TypeConfig tunes how the generic formatter renders a type.
type TypeConfig struct {
	// QualifiedName prints the package path before the type name.
	QualifiedName bool `yaml:"qualified_name"`
	// Unexported includes unexported fields.
	Unexported bool `yaml:"unexported"`
	// DeclaredOnly lists embedded structs as a single field instead of
	// flattening their fields into the embedding struct.
	DeclaredOnly bool `yaml:"declared_only"`
	// Getters includes the results of exported methods taking no argument
	// and returning a value, optionally followed by an error.
	Getters bool `yaml:"getters"`
	// GetterPrefixes and GetterSuffixes restrict getters to the matching
	// method names. When both are empty every method qualifies.
	GetterPrefixes []string `yaml:"getter_prefixes"`
	GetterSuffixes []string `yaml:"getter_suffixes"`
	// Exclude lists field and method names never rendered.
	Exclude []string `yaml:"exclude"`
}

// Config is the content of a configuration file.
//
//	max_depth: 16
//	defaults:
//	  getters: true
//	  getter_prefixes: [Get, Is]
//	types:
//	  github.com/acme/billing.Invoice:
//	    unexported: true
//	    exclude: [Secret]
type Config struct {
	Defaults   *TypeConfig           `yaml:"defaults"`
	Types      map[string]TypeConfig `yaml:"types"`
	MaxDepth   int                   `yaml:"max_depth"`
	MaxWidth   int                   `yaml:"max_width"`
	RuneAsChar bool                  `yaml:"rune_as_char"`
}

func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must not be negative, got %d", ErrInvalidConfig, c.MaxWidth)
	}
	for name := range c.Types {
		i := strings.LastIndexByte(name, '.')
		if i <= 0 || i == len(name)-1 {
			return fmt.Errorf("%w: type %q is not a qualified name like example.com/pkg.Type", ErrInvalidConfig, name)
		}
	}
	return nil
}

type typeKind int

const (
	otherKind typeKind = iota
	structKind
	enumKind
)

// typeInfo describes how the generic formatter handles a type. It is
// computed once per type and configuration table.
type typeInfo struct {
	kind    typeKind
	chain   []reflect.Type // the type, then the structs it embeds
	config  TypeConfig
	fields  []member
	getters []member
}

// configTable is an immutable set of type configurations, carrying the
// descriptors computed from it.
type configTable struct {
	defaults TypeConfig
	byType   map[reflect.Type]TypeConfig
	byName   map[string]TypeConfig
	infos    sync.Map // reflect.Type -> *typeInfo
}

func newConfigTable(defaults TypeConfig, byName map[string]TypeConfig) *configTable {
	return &configTable{
		defaults: defaults,
		byType:   make(map[reflect.Type]TypeConfig),
		byName:   maps.Clone(byName),
	}
}

func (c *configTable) with(t reflect.Type, cfg TypeConfig) *configTable {
	next := &configTable{
		defaults: c.defaults,
		byType:   maps.Clone(c.byType),
		byName:   c.byName,
	}
	next.byType[t] = cfg
	return next
}

func (c *configTable) lookup(t reflect.Type) (TypeConfig, bool) {
	if cfg, ok := c.byType[t]; ok {
		return cfg, true
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return TypeConfig{}, false
	}
	cfg, ok := c.byName[t.PkgPath()+"."+t.Name()]
	return cfg, ok
}

func (c *configTable) info(t reflect.Type) *typeInfo {
	if info, ok := c.infos.Load(t); ok {
		return info.(*typeInfo)
	}
	info, _ := c.infos.LoadOrStore(t, c.describe(t))
	return info.(*typeInfo)
}

func (c *configTable) describe(t reflect.Type) *typeInfo {
	if isEnum(t) {
		return &typeInfo{kind: enumKind, chain: []reflect.Type{t}}
	}

	info := &typeInfo{kind: otherKind, chain: supertypes(t), config: c.defaults}
	for _, st := range info.chain {
		if cfg, ok := c.lookup(st); ok {
			info.config = cfg
			break
		}
	}
	if t.Kind() == reflect.Struct {
		info.kind = structKind
		info.fields = collectFields(t, info.config)
		if info.config.Getters {
			info.getters = collectGetters(reflect.PointerTo(t), info.config)
		}
	}
	return info
}

// supertypes returns t followed by the struct types it embeds, depth first
// in declaration order.
func supertypes(t reflect.Type) []reflect.Type {
	chain := []reflect.Type{t}
	seen := map[reflect.Type]bool{t: true}
	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		if t.Kind() != reflect.Struct {
			return
		}
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := indirect(f.Type)
			if ft.Kind() != reflect.Struct || seen[ft] {
				continue
			}
			seen[ft] = true
			chain = append(chain, ft)
			walk(ft)
		}
	}
	walk(t)
	return chain
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

// isEnum reports whether t is a named integer or string type carrying its
// symbolic names through String.
func isEnum(t reflect.Type) bool {
	if t.Name() == "" || t.PkgPath() == "" || !t.Implements(stringerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return true
	}
	return false
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
