package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mwiater/handytools/internal/appconfig"
)

const (
	// imageModel is the fixed text-to-image model served through the
	// Hugging Face inference router.
	imageModel = "black-forest-labs/FLUX.1-schnell"
	// imageProvider is the fixed provider route on the router.
	imageProvider = "hf-inference"
	// imageMimeType is the mime type of every generated image.
	imageMimeType = "image/png"
)

// inferenceRequest is the payload sent to the inference provider.
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NumInferenceSteps int `json:"num_inference_steps"`
}

// GenerateImageDefinition describes the text-to-image tool to the MCP host.
func GenerateImageDefinition() Definition {
	return Definition{
		Name:        GenerateImageName,
		Description: "Generate a PNG image from a text prompt using " + imageModel + ". Requires HF_TOKEN.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{
					"type":        "string",
					"description": "Text description of the image to generate.",
				},
				"num_inference_steps": map[string]any{
					"type":        "integer",
					"description": "Diffusion steps; more steps take longer.",
					"minimum":     1,
					"maximum":     10,
					"default":     4,
				},
			},
			"required":             []string{"prompt"},
			"additionalProperties": false,
		},
	}
}

// NewGenerateImageHandler builds the image generation handler. A missing
// credential is reported without attempting any network call.
func NewGenerateImageHandler(cfg *appconfig.Config, client *http.Client) Handler {
	base := cfg.InferenceBaseURL()
	token := cfg.HFToken

	return func(args map[string]any) ([]ContentPart, error) {
		prompt, ok := args["prompt"].(string)
		if !ok {
			return nil, fmt.Errorf("generate_image: prompt argument missing after validation")
		}
		steps, ok := toFloat(args["num_inference_steps"])
		if !ok {
			return nil, fmt.Errorf("generate_image: num_inference_steps missing after validation")
		}

		if token == "" {
			return ErrorContent("HF_TOKEN is not set; export a Hugging Face access token to enable image generation."), nil
		}

		payload, err := json.Marshal(inferenceRequest{
			Inputs:     prompt,
			Parameters: inferenceParameters{NumInferenceSteps: int(steps)},
		})
		if err != nil {
			return nil, fmt.Errorf("generate_image: marshal request: %w", err)
		}

		inferenceURL := fmt.Sprintf("%s/%s/models/%s", base, imageProvider, imageModel)
		req, err := http.NewRequest(http.MethodPost, inferenceURL, bytes.NewReader(payload))
		if err != nil {
			return ErrorContent("image request failed: %v", err), nil
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", imageMimeType)

		resp, err := client.Do(req)
		if err != nil {
			return ErrorContent("image request failed: %v", err), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ErrorContent("failed to read image response: %v", err), nil
		}
		if resp.StatusCode != http.StatusOK {
			return ErrorContent("inference provider returned status %s: %s", resp.Status, bytes.TrimSpace(body)), nil
		}

		return ImageContent(body, imageMimeType), nil
	}
}
