package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas keyed by Schema.Name. Every
// schema in this service (adaptive-question, tutor-reply,
// grading-result, studio-reply) is a fixed singleton, so the name is a
// stable cache key.
var compiledSchemas sync.Map

// validate checks raw model output against the schema. A nil schema
// accepts anything. Failures carry the schema name so the
// malformed-output handling upstream can say which contract the model
// broke.
func (s *Schema) validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema %s: output is not JSON: %w", s.Name, err),
		}
	}

	compiled, err := s.compiled()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := compiled.Validate(value); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema %s: %w", s.Name, err),
		}
	}
	return nil
}

// compiled returns the cached compiled form of the schema, compiling
// on first use.
func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON document; round-trip the
	// definition map to normalize non-JSON value types inside it.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: encode definition: %w", s.Name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema %s: decode definition: %w", s.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: register: %w", s.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: compile: %w", s.Name, err)
	}

	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
