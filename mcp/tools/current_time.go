package tools

import (
	"fmt"
	"time"
)

// nowFn is swapped out in tests to freeze the clock.
var nowFn = time.Now

// CurrentTimeDefinition describes the timezone clock tool to the MCP host.
func CurrentTimeDefinition() Definition {
	return Definition{
		Name:        CurrentTimeName,
		Description: "Get the current time in a given IANA timezone.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "IANA timezone name, e.g. Asia/Seoul.",
					"default":     "UTC",
				},
			},
			"additionalProperties": false,
		},
	}
}

// CurrentTime formats the current instant in the requested timezone. An
// unrecognized zone is reported as error text naming the offending value.
func CurrentTime(args map[string]any) ([]ContentPart, error) {
	timezone, ok := args["timezone"].(string)
	if !ok {
		return nil, fmt.Errorf("current_time: timezone argument missing after validation")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return ErrorContent("unknown timezone %q (use an IANA name like \"Asia/Seoul\")", timezone), nil
	}

	formatted := nowFn().In(loc).Format("2006-01-02 15:04:05")
	return TextContent(fmt.Sprintf("[%s] current time: %s", timezone, formatted)), nil
}
