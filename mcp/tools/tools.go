// Package tools defines the tool contracts and the six built-in tools exposed
// by the handytools MCP server.
package tools

import (
	"encoding/base64"
	"fmt"
)

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	// OutputSchema, when non-nil, is validated against the tool's result
	// envelope after every successful call.
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
}

// ContentPart represents a piece of data returned from a tool invocation.
// Type is "text" or "image"; Text carries text parts, Data (base64) and
// MimeType carry image parts.
type ContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Handler executes a tool using validated, defaulted arguments.
//
// Handlers convert their own runtime failures (upstream errors, rejected
// domain values) into text content prefixed with "Error:"; a non-nil error
// return is reserved for programming mistakes and surfaces as a protocol
// failure.
type Handler func(args map[string]any) ([]ContentPart, error)

const (
	// GreetName is the canonical name for the greeting tool.
	GreetName = "greet"
	// CalculatorName is the canonical name for the calculator tool.
	CalculatorName = "calculator"
	// CurrentTimeName is the canonical name for the timezone clock tool.
	CurrentTimeName = "current_time"
	// GeocodeName is the canonical name for the geocoding tool.
	GeocodeName = "geocode"
	// GetWeatherName is the canonical name for the weather forecast tool.
	GetWeatherName = "get_weather"
	// GenerateImageName is the canonical name for the image generation tool.
	GenerateImageName = "generate_image"
)

// TextContent wraps a single text part.
func TextContent(text string) []ContentPart {
	return []ContentPart{{Type: "text", Text: text}}
}

// ErrorContent formats a handler failure as an error-marked text part.
func ErrorContent(format string, args ...any) []ContentPart {
	return TextContent("Error: " + fmt.Sprintf(format, args...))
}

// ImageContent encodes raw image bytes as a single base64 image part.
func ImageContent(data []byte, mimeType string) []ContentPart {
	return []ContentPart{{
		Type:     "image",
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}}
}
