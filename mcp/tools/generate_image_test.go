package tools

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mwiater/handytools/internal/appconfig"
)

func TestGenerateImageMissingCredential(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	handler := NewGenerateImageHandler(&appconfig.Config{InferenceURL: server.URL}, newTestClient())
	content, err := handler(map[string]any{"prompt": "a lighthouse", "num_inference_steps": 4.0})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("expected no network call without a credential")
	}
	if !strings.HasPrefix(content[0].Text, "Error:") || !strings.Contains(content[0].Text, "HF_TOKEN") {
		t.Fatalf("expected error text naming HF_TOKEN, got %q", content[0].Text)
	}
}

func TestGenerateImageSuccess(t *testing.T) {
	t.Parallel()

	imageBytes := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x01, 0x02}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "black-forest-labs/FLUX.1-schnell") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
			t.Errorf("unexpected auth header: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var req inferenceRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		if req.Inputs != "a lighthouse" || req.Parameters.NumInferenceSteps != 4 {
			t.Errorf("unexpected request payload: %+v", req)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(imageBytes)
	}))
	defer server.Close()

	cfg := &appconfig.Config{InferenceURL: server.URL, HFToken: "hf_test"}
	handler := NewGenerateImageHandler(cfg, newTestClient())
	content, err := handler(map[string]any{"prompt": "a lighthouse", "num_inference_steps": 4.0})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if len(content) != 1 || content[0].Type != "image" {
		t.Fatalf("expected exactly one image part, got %+v", content)
	}
	if content[0].MimeType != "image/png" {
		t.Fatalf("unexpected mime type: %q", content[0].MimeType)
	}
	decoded, err := base64.StdEncoding.DecodeString(content[0].Data)
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	if string(decoded) != string(imageBytes) {
		t.Fatal("decoded payload does not round-trip the original bytes")
	}
}

func TestGenerateImageProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := &appconfig.Config{InferenceURL: server.URL, HFToken: "hf_test"}
	handler := NewGenerateImageHandler(cfg, newTestClient())
	content, err := handler(map[string]any{"prompt": "a lighthouse", "num_inference_steps": 2.0})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if len(content) != 1 || content[0].Type != "text" {
		t.Fatalf("expected a single text part and no image, got %+v", content)
	}
	if !strings.HasPrefix(content[0].Text, "Error:") || !strings.Contains(content[0].Text, "model overloaded") {
		t.Fatalf("expected provider reason in error text, got %q", content[0].Text)
	}
}
