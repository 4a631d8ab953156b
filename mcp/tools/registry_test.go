package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func echoDefinition() Definition {
	return Definition{
		Name:        "echo",
		Description: "Echo a message.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
				"repeat":  map[string]any{"type": "integer", "minimum": 1, "default": 1},
			},
			"required":             []string{"message"},
			"additionalProperties": false,
		},
	}
}

func echoHandler(args map[string]any) ([]ContentPart, error) {
	message, _ := args["message"].(string)
	repeat, _ := toFloat(args["repeat"])
	return TextContent(strings.Repeat(message, int(repeat))), nil
}

func TestRegisterDuplicateRejected(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register(echoDefinition(), echoHandler); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(echoDefinition(), echoHandler); err == nil {
		t.Fatal("expected duplicate registration to be rejected")
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Dispatch("nope", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestDispatchValidation(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register(echoDefinition(), echoHandler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing required field", args: map[string]any{}},
		{name: "wrong type", args: map[string]any{"message": 7}},
		{name: "below minimum", args: map[string]any{"message": "hi", "repeat": 0}},
		{name: "unexpected field", args: map[string]any{"message": "hi", "extra": true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.Dispatch("echo", tt.args)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected ArgumentError, got %v", err)
			}
			if len(argErr.Problems) == 0 {
				t.Fatal("expected field-level problem messages")
			}
		})
	}
}

func TestDispatchAppliesDefaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	var seen map[string]any
	def := echoDefinition()
	if err := r.Register(def, func(args map[string]any) ([]ContentPart, error) {
		seen = args
		return echoHandler(args)
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	content, err := r.Dispatch("echo", map[string]any{"message": "hi"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if repeat, ok := toFloat(seen["repeat"]); !ok || repeat != 1 {
		t.Fatalf("expected default repeat=1 visible to handler, got %v", seen["repeat"])
	}
	if content[0].Text != "hi" {
		t.Fatalf("unexpected content: %q", content[0].Text)
	}
}

func TestDispatchOutputContract(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	def := Definition{
		Name:        "broken",
		Description: "Returns an image despite declaring text output.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type": map[string]any{"type": "string", "enum": []string{"text"}},
						},
						"required": []string{"type"},
					},
				},
			},
			"required": []string{"content"},
		},
	}
	if err := r.Register(def, func(map[string]any) ([]ContentPart, error) {
		return ImageContent([]byte("png"), "image/png"), nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := r.Dispatch("broken", nil)
	var cerr *ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ContractError, got %v", err)
	}
}

func TestDispatchEmptyContentIsContractError(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	def := Definition{
		Name:        "empty",
		Description: "Returns nothing.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}
	if err := r.Register(def, func(map[string]any) ([]ContentPart, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := r.Dispatch("empty", nil)
	var cerr *ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ContractError, got %v", err)
	}
}

func TestDispatchIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register(CalculatorDefinition(), Calculator); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	args := map[string]any{"a": 2.5, "b": 4.0, "operator": "*"}
	first, err := r.Dispatch(CalculatorName, args)
	if err != nil {
		t.Fatalf("first Dispatch failed: %v", err)
	}
	second, err := r.Dispatch(CalculatorName, args)
	if err != nil {
		t.Fatalf("second Dispatch failed: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("expected byte-identical results, got %s vs %s", firstJSON, secondJSON)
	}
}

func TestDefinitionsPreserveRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	names := []string{"c", "a", "b"}
	for _, name := range names {
		def := echoDefinition()
		def.Name = name
		if err := r.Register(def, echoHandler); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	defs := r.Definitions()
	if len(defs) != len(names) {
		t.Fatalf("expected %d definitions, got %d", len(names), len(defs))
	}
	for i, def := range defs {
		if def.Name != names[i] {
			t.Fatalf("expected %s at index %d, got %s", names[i], i, def.Name)
		}
	}
}
