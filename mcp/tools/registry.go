package tools

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mwiater/handytools/internal/appconfig"
	"github.com/mwiater/handytools/internal/logging"
	"github.com/xeipuuv/gojsonschema"
)

// ErrUnknownTool marks dispatch against a name that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// ArgumentError reports a schema validation failure for tool arguments,
// carrying one message per violated field.
type ArgumentError struct {
	Tool     string
	Problems []string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Problems, "; "))
}

// ContractError reports a tool result that violated its declared output
// schema. This is a server-side bug, not a caller mistake.
type ContractError struct {
	Tool     string
	Problems []string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("tool %s violated its output contract: %s", e.Tool, strings.Join(e.Problems, "; "))
}

// Registry maps tool names to their definitions and handlers. It is populated
// once at startup and read-only afterwards, so no locking is required.
type Registry struct {
	defs     map[string]Definition
	handlers map[string]Handler
	order    []string
}

// NewRegistry returns an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]Definition),
		handlers: make(map[string]Handler),
	}
}

// DefaultRegistry builds a registry holding the six built-in tools, sharing a
// single HTTP client configured with the application request timeout.
func DefaultRegistry(cfg *appconfig.Config) (*Registry, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout()}

	r := NewRegistry()
	registrations := []struct {
		def     Definition
		handler Handler
	}{
		{GreetDefinition(), Greet},
		{CalculatorDefinition(), Calculator},
		{CurrentTimeDefinition(), CurrentTime},
		{GeocodeDefinition(), NewGeocodeHandler(cfg, client)},
		{GetWeatherDefinition(), NewGetWeatherHandler(cfg, client)},
		{GenerateImageDefinition(), NewGenerateImageHandler(cfg, client)},
	}
	for _, reg := range registrations {
		if err := r.Register(reg.def, reg.handler); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry. Registering a name twice is a
// programming error and is rejected rather than silently overwriting.
func (r *Registry) Register(def Definition, handler Handler) error {
	if def.Name == "" {
		return errors.New("tool definition requires a name")
	}
	if handler == nil {
		return fmt.Errorf("tool %s requires a handler", def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tool %s is already registered", def.Name)
	}
	r.defs[def.Name] = def
	r.handlers[def.Name] = handler
	r.order = append(r.order, def.Name)
	return nil
}

// Definitions returns all registered tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Dispatch validates args against the tool's input schema, applies declared
// defaults for omitted fields, and invokes the handler. The returned error is
// non-nil only for unknown tools, invalid arguments, or server-side bugs;
// handler runtime failures arrive as ordinary error-marked text content.
func (r *Registry) Dispatch(name string, args map[string]any) ([]ContentPart, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]any{}
	}

	if problems, err := validateAgainst(def.InputSchema, args); err != nil {
		return nil, fmt.Errorf("validate %s arguments: %w", name, err)
	} else if len(problems) > 0 {
		return nil, &ArgumentError{Tool: name, Problems: problems}
	}

	args = applyDefaults(def.InputSchema, args)

	content, err := r.handlers[name](args)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	if len(content) == 0 {
		return nil, &ContractError{Tool: name, Problems: []string{"handler returned no content"}}
	}

	if def.OutputSchema != nil {
		envelope := map[string]any{"content": contentAsAny(content)}
		problems, err := validateAgainst(def.OutputSchema, envelope)
		if err != nil {
			return nil, fmt.Errorf("validate %s result: %w", name, err)
		}
		if len(problems) > 0 {
			cerr := &ContractError{Tool: name, Problems: problems}
			logging.LogEvent("tool contract violation: %v", cerr)
			return nil, cerr
		}
	}

	return content, nil
}

// validateAgainst runs gojsonschema over doc and returns one message per
// violation. An error return means validation itself could not run.
func validateAgainst(schema map[string]any, doc any) ([]string, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// applyDefaults fills omitted optional fields from the schema's declared
// "default" values, so handlers only ever see fully populated arguments.
// The input map is not mutated.
func applyDefaults(schema map[string]any, args map[string]any) map[string]any {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return args
	}
	filled := make(map[string]any, len(args))
	for k, v := range args {
		filled[k] = v
	}
	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		def, has := prop["default"]
		if !has {
			continue
		}
		if _, present := filled[name]; !present {
			filled[name] = def
		}
	}
	return filled
}

// contentAsAny converts content parts into the generic structure gojsonschema
// expects for document loading.
func contentAsAny(content []ContentPart) []any {
	out := make([]any, 0, len(content))
	for _, part := range content {
		item := map[string]any{"type": part.Type}
		if part.Text != "" {
			item["text"] = part.Text
		}
		if part.Data != "" {
			item["data"] = part.Data
		}
		if part.MimeType != "" {
			item["mimeType"] = part.MimeType
		}
		out = append(out, item)
	}
	return out
}
