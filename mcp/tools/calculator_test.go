package tools

import (
	"testing"
)

func TestCalculatorOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     float64
		operator string
		want     string
	}{
		{name: "addition", a: 5, b: 3, operator: "+", want: "5 + 3 = 8"},
		{name: "subtraction", a: 5, b: 3, operator: "-", want: "5 - 3 = 2"},
		{name: "multiplication", a: 2.5, b: 4, operator: "*", want: "2.5 * 4 = 10"},
		{name: "division", a: 7, b: 2, operator: "/", want: "7 / 2 = 3.5"},
		{name: "negative result", a: 3, b: 5, operator: "-", want: "3 - 5 = -2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content, err := Calculator(map[string]any{"a": tt.a, "b": tt.b, "operator": tt.operator})
			if err != nil {
				t.Fatalf("Calculator returned error: %v", err)
			}
			if len(content) != 1 || content[0].Text != tt.want {
				t.Fatalf("got %+v, want single text %q", content, tt.want)
			}
		})
	}
}

func TestCalculatorDivideByZero(t *testing.T) {
	t.Parallel()

	content, err := Calculator(map[string]any{"a": 1.0, "b": 0.0, "operator": "/"})
	if err != nil {
		t.Fatalf("Calculator returned error: %v", err)
	}
	if content[0].Text != "Error: cannot divide by zero." {
		t.Fatalf("unexpected divide-by-zero text: %q", content[0].Text)
	}
}
