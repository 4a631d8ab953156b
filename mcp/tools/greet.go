package tools

import "fmt"

// greetingTemplates maps a supported language code to its greeting format.
// The name is substituted verbatim.
var greetingTemplates = map[string]string{
	"ko": "안녕하세요, %s님!",
	"en": "Hello, %s!",
	"ja": "こんにちは、%sさん！",
	"zh": "你好，%s！",
	"es": "¡Hola, %s!",
	"fr": "Bonjour, %s !",
	"de": "Hallo, %s!",
}

// GreetDefinition describes the greeting tool to the MCP host.
func GreetDefinition() Definition {
	return Definition{
		Name:        GreetName,
		Description: "Greet a person by name in one of the supported languages.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Name of the person to greet.",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Greeting language code.",
					"enum":        []string{"ko", "en", "ja", "zh", "es", "fr", "de"},
					"default":     "en",
				},
			},
			"required":             []string{"name"},
			"additionalProperties": false,
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type": map[string]any{"type": "string", "enum": []string{"text"}},
							"text": map[string]any{"type": "string"},
						},
						"required": []string{"type", "text"},
					},
				},
			},
			"required": []string{"content"},
		},
	}
}

// Greet renders the per-language greeting template. Unsupported languages are
// rejected by schema validation before this handler runs.
func Greet(args map[string]any) ([]ContentPart, error) {
	name, ok := args["name"].(string)
	if !ok {
		return nil, fmt.Errorf("greet: name argument missing after validation")
	}
	language, _ := args["language"].(string)
	template, ok := greetingTemplates[language]
	if !ok {
		return nil, fmt.Errorf("greet: no template for language %q", language)
	}
	return TextContent(fmt.Sprintf(template, name)), nil
}
