package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func framedResponse(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

func testClient(t *testing.T, responses string) (*Client, *bytes.Buffer) {
	t.Helper()
	var sent bytes.Buffer
	return &Client{
		reader: bufio.NewReader(strings.NewReader(responses)),
		writer: bufio.NewWriter(&sent),
	}, &sent
}

func TestCallRoundTrip(t *testing.T) {
	t.Parallel()

	c, sent := testClient(t, framedResponse(t, map[string]any{
		"jsonrpc": "2.0", "id": 1, "result": map[string]any{"ok": true},
	}))

	result, err := c.Call(context.Background(), "ping", nil)
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if !strings.Contains(string(result), `"ok":true`) {
		t.Fatalf("unexpected result: %s", result)
	}

	frame := sent.String()
	if !strings.HasPrefix(frame, "Content-Length: ") {
		t.Fatalf("expected framed request, got %q", frame)
	}
	if !strings.Contains(frame, `"method":"ping"`) {
		t.Fatalf("expected ping request, got %q", frame)
	}
}

func TestCallServerError(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, framedResponse(t, map[string]any{
		"jsonrpc": "2.0", "id": 1,
		"error": map[string]any{"code": -32601, "message": "Method not found: bogus"},
	}))

	_, err := c.Call(context.Background(), "bogus", nil)
	if err == nil || !strings.Contains(err.Error(), "Method not found") {
		t.Fatalf("expected server error surfaced, got %v", err)
	}
}

func TestCallContextCancellation(t *testing.T) {
	t.Parallel()

	// A reader that never delivers a full frame.
	c := &Client{
		reader: bufio.NewReader(blockingReader{}),
		writer: bufio.NewWriter(&bytes.Buffer{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Call(ctx, "ping", nil)
	if err == nil || ctx.Err() == nil {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestListTools(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, framedResponse(t, map[string]any{
		"jsonrpc": "2.0", "id": 1,
		"result": map[string]any{"tools": []map[string]string{
			{"name": "greet", "description": "Greet a person."},
			{"name": "calculator", "description": "Arithmetic."},
		}},
	}))

	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools returned error: %v", err)
	}
	if len(tools) != 2 || tools[0].Name != "greet" {
		t.Fatalf("unexpected tools: %+v", tools)
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	time.Sleep(time.Hour)
	return 0, nil
}
