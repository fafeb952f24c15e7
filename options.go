package repr

import (
	"github.com/go-logr/logr"
)

const defaultMaxDepth = 32

type options struct {
	log        logr.Logger
	maxDepth   int
	maxWidth   int
	runeAsChar bool
	defaults   TypeConfig
	types      map[string]TypeConfig
}

type Option func(*options)

func defaultOptions() options {
	return options{
		log:      logr.Discard(),
		maxDepth: defaultMaxDepth,
	}
}

// WithLogger sets the logger receiving registry and member access events.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMaxDepth bounds the nesting depth of a render. Deeper values render
// as "<...>". Non-positive values keep the default of 32.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithMaxWidth truncates rendered strings, error messages and table cells
// wider than width display columns. Zero disables truncation.
func WithMaxWidth(width int) Option {
	return func(o *options) { o.maxWidth = max(width, 0) }
}

// WithRuneAsChar renders rune (int32) values as quoted characters instead
// of numbers.
func WithRuneAsChar(enabled bool) Option {
	return func(o *options) { o.runeAsChar = enabled }
}

// WithDefaults sets the configuration used by types without one of their
// own.
func WithDefaults(cfg TypeConfig) Option {
	return func(o *options) { o.defaults = cfg }
}

// WithConfig applies a loaded configuration file.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.Defaults != nil {
			o.defaults = *cfg.Defaults
		}
		if cfg.MaxDepth > 0 {
			o.maxDepth = cfg.MaxDepth
		}
		if cfg.MaxWidth > 0 {
			o.maxWidth = cfg.MaxWidth
		}
		if cfg.RuneAsChar {
			o.runeAsChar = true
		}
		if len(cfg.Types) > 0 && o.types == nil {
			o.types = make(map[string]TypeConfig, len(cfg.Types))
		}
		for name, tc := range cfg.Types {
			o.types[name] = tc
		}
	}
}
