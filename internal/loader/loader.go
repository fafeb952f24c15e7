// Package loader decodes the documents rendered by the repr command.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrUndecodable       = errors.New("input is neither JSON, TOML nor YAML")
)

type Format string

const (
	Auto Format = "auto"
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

var formats = []Format{Auto, JSON, YAML, TOML}

func (f Format) String() string { return string(f) }

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yml" {
		return YAML, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath guesses the format of a file from its extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	}
	return Auto
}

// Decode reads a whole document. Auto tries JSON, then TOML, then YAML.
func Decode(r io.Reader, f Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	switch f {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	case TOML:
		return decodeTOML(data)
	case Auto, "":
		for _, decode := range []func([]byte) (any, error){decodeJSON, decodeTOML, decodeYAML} {
			if v, err := decode(data); err == nil {
				return v, nil
			}
		}
		return nil, ErrUndecodable
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func decodeJSON(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("error decoding JSON: trailing data")
	}
	return v, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("error decoding YAML: %w", err)
	}
	return v, nil
}

func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("error decoding TOML: %w", err)
	}
	return v, nil
}
