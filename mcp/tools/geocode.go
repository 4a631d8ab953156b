package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mwiater/handytools/internal/appconfig"
)

// nominatimResult defines the fields we need from OpenStreetMap.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// GeocodeDefinition describes the geocoding tool to the MCP host.
func GeocodeDefinition() Definition {
	return Definition{
		Name:        GeocodeName,
		Description: "Look up coordinates for a place name or address via OpenStreetMap Nominatim.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Place name or address to look up, e.g. Eiffel Tower.",
				},
			},
			"required":             []string{"query"},
			"additionalProperties": false,
		},
	}
}

// NewGeocodeHandler builds the geocode handler around the configured Nominatim
// endpoint. Only the first match is used; an empty result set is a normal
// "no results" answer rather than an error.
func NewGeocodeHandler(cfg *appconfig.Config, client *http.Client) Handler {
	base := cfg.GeocodeBaseURL()
	userAgent := cfg.ClientUserAgent()

	return func(args map[string]any) ([]ContentPart, error) {
		query, ok := args["query"].(string)
		if !ok {
			return nil, fmt.Errorf("geocode: query argument missing after validation")
		}

		lookupURL := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=1&addressdetails=1", base, url.QueryEscape(query))
		req, err := http.NewRequest(http.MethodGet, lookupURL, nil)
		if err != nil {
			return ErrorContent("geocoding request failed: %v", err), nil
		}
		// Nominatim's usage policy requires an identifying User-Agent.
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return ErrorContent("geocoding request failed: %v", err), nil
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return ErrorContent("geocoding service returned status: %s", resp.Status), nil
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ErrorContent("failed to read geocoding response: %v", err), nil
		}

		var results []nominatimResult
		if err := json.Unmarshal(body, &results); err != nil {
			return ErrorContent("failed to parse geocoding response: %v", err), nil
		}
		if len(results) == 0 {
			return TextContent(fmt.Sprintf("No results found for %q.", query)), nil
		}

		first := results[0]
		return TextContent(fmt.Sprintf("%s\nLatitude: %s\nLongitude: %s",
			first.DisplayName, first.Lat, first.Lon)), nil
	}
}
