package tools

import (
	"fmt"
	"strconv"
)

// CalculatorDefinition describes the arithmetic tool to the MCP host.
func CalculatorDefinition() Definition {
	return Definition{
		Name:        CalculatorName,
		Description: "Perform basic arithmetic on two numbers.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{
					"type":        "number",
					"description": "First operand.",
				},
				"b": map[string]any{
					"type":        "number",
					"description": "Second operand.",
				},
				"operator": map[string]any{
					"type":        "string",
					"description": "Arithmetic operator.",
					"enum":        []string{"+", "-", "*", "/"},
				},
			},
			"required":             []string{"a", "b", "operator"},
			"additionalProperties": false,
		},
	}
}

// Calculator evaluates "a operator b" with IEEE double-precision semantics.
// Division by zero is reported as error text, not raised.
func Calculator(args map[string]any) ([]ContentPart, error) {
	a, okA := toFloat(args["a"])
	b, okB := toFloat(args["b"])
	operator, okOp := args["operator"].(string)
	if !okA || !okB || !okOp {
		return nil, fmt.Errorf("calculator: arguments missing after validation")
	}

	var result float64
	switch operator {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return ErrorContent("cannot divide by zero."), nil
		}
		result = a / b
	default:
		return nil, fmt.Errorf("calculator: unexpected operator %q", operator)
	}

	return TextContent(fmt.Sprintf("%s %s %s = %s",
		formatNumber(a), operator, formatNumber(b), formatNumber(result))), nil
}

// toFloat accepts the numeric representations json.Unmarshal and callers may
// hand us for a schema "number".
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// formatNumber renders a float without trailing zeros (8 → "8", 2.5 → "2.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
