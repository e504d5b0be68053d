package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A test question object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"level":    map[string]any{"type": "integer", "minimum": 0},
				"style":    map[string]any{"type": "string", "enum": []any{"short", "long"}},
			},
			"required": []any{"question", "level"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is 2+2?","level":1,"style":"short"}`)
	if err := testSchema().validate(raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is 2+2?","level":1}`)
	if err := testSchema().validate(raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is 2+2?"}`)
	err := testSchema().validate(raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidate_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"question":"q","level":"one"}`)
	err := testSchema().validate(raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidate_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"question":"q","level":1,"style":"epic"}`)
	if err := testSchema().validate(raw); err == nil {
		t.Fatal("expected error for invalid enum value")
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := testSchema().validate(raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidate_ErrorNamesSchema(t *testing.T) {
	raw := json.RawMessage(`{"question":"q"}`)
	err := testSchema().validate(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test-question") {
		t.Fatalf("error %q does not name the schema", err.Error())
	}
}

func TestValidate_NilSchema(t *testing.T) {
	var s *Schema
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := s.validate(raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidate_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested-grade",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"grade": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"marks": map[string]any{"type": "integer"},
					},
					"required": []any{"marks"},
				},
				"remarks": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"grade", "remarks"},
		},
	}

	valid := json.RawMessage(`{"grade":{"marks":8},"remarks":["sign error"]}`)
	if err := schema.validate(valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"grade":{"marks":8},"remarks":[1,2]}`)
	if err := schema.validate(invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
