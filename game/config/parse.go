package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "mem://schemas/puzzle-config.json"

// Supported file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled configuration schema
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("failed to compile config schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// FormatOf returns the config format implied by a file name
func FormatOf(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Parse decodes a configuration document and validates it against the
// schema and the puzzle rules.
func Parse(data []byte, format string) (*puzzle.Config, error) {
	doc := data
	if format == FormatYAML {
		// The schema checks the document as written, so YAML is converted
		// key for key instead of going through the typed struct.
		var node interface{}
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		plain, err := jsonValue(node)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		encoded, err := json.Marshal(plain)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		doc = encoded
	}

	var raw interface{}
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var cfg puzzle.Config
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := puzzle.ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// jsonValue turns a decoded YAML value into one encoding/json can marshal.
// Mapping keys become strings; art_offsets uses integer keys.
func jsonValue(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			conv, err := jsonValue(val)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			switch k.(type) {
			case string, int, int64, uint64:
			default:
				return nil, fmt.Errorf("unsupported mapping key %v (%T)", k, k)
			}
			conv, err := jsonValue(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = conv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			conv, err := jsonValue(val)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	default:
		return v, nil
	}
}
