// Package prompts implements the parameterized instruction templates exposed
// alongside the tools.
package prompts

import (
	"fmt"
	"strings"
)

// CodeReviewName is the canonical name of the code review prompt.
const CodeReviewName = "code-review"

// Definition describes a prompt to the MCP host.
type Definition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Arguments   []Argument `json:"arguments,omitempty"`
}

// Argument describes one prompt parameter.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Message is one rendered prompt message.
type Message struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
}

// MessageContent carries the text of a prompt message.
type MessageContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const codeReviewTemplate = `Please review the following code.

## Code

%s

## Review instructions

Work through each section in order.

### 1. Summary
Describe in two or three sentences what the code does.

### 2. Correctness
Identify bugs, unhandled edge cases, and incorrect assumptions. Point at
specific lines.

### 3. Readability & style
Flag unclear naming, dead code, and structure that obscures intent.

### 4. Performance
Note any avoidable allocations, quadratic behavior, or redundant work. Skip
micro-optimizations that hurt clarity.

### 5. Security
Check for injection risks, unvalidated input, and mishandled credentials.

### 6. Suggested tests
List the test cases you would add, starting with the highest-risk paths.`

// CodeReviewDefinition describes the code review prompt to the MCP host.
func CodeReviewDefinition() Definition {
	return Definition{
		Name:        CodeReviewName,
		Description: "Structured multi-section review of a piece of code.",
		Arguments: []Argument{
			{Name: "code", Description: "The code to review.", Required: true},
		},
	}
}

// CodeReview expands the review template with the submitted code. The only
// substitution is the code text itself; the sections are fixed.
func CodeReview(args map[string]string) ([]Message, error) {
	code, ok := args["code"]
	if !ok || strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("prompt %s requires a code argument", CodeReviewName)
	}
	return []Message{
		{
			Role: "user",
			Content: MessageContent{
				Type: "text",
				Text: fmt.Sprintf(codeReviewTemplate, code),
			},
		},
	}, nil
}
