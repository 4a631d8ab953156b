package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/handytools/internal/logging"
)

// --- Framing Helpers ---

func writeMessage(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func readMessage(r *bufio.Reader) (*jsonrpcRequest, error) {
	// Read headers until blank line
	headers := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		s := line
		if s == "\r\n" || s == "\n" {
			break
		}
		// Accumulate headers (allow LF-only too)
		s = strings.TrimRight(s, "\r\n")
		if s == "" {
			break
		}
		if i := strings.IndexByte(s, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(s[:i]))
			val := strings.TrimSpace(s[i+1:])
			headers[key] = val
		}
	}
	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("missing Content-Length")
	}
	var length int
	if _, err := fmt.Sscanf(clStr, "%d", &length); err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %v", err)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ServeStdio reads framed JSON-RPC requests from in and writes responses to
// out until EOF. Each request is handled independently; a malformed frame
// produces a best-effort error response and ends the stream.
func (s *Server) ServeStdio(in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	for {
		req, err := readMessage(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			// We cannot recover an id from a broken frame; send a generic
			// error to keep the stream sane, then stop.
			_ = writeMessage(w, jsonrpcResponse{JSONRPC: "2.0", Error: &jsonrpcError{Code: -32000, Message: err.Error()}})
			return err
		}
		if req == nil {
			return nil
		}
		logging.LogRequest("in", "stdio", toolName(req), req.Params)
		if err := writeMessage(w, s.handle(req)); err != nil {
			logging.LogEvent("stdio write failed: %v", err)
			return err
		}
	}
}

// toolName extracts the tool name from tools/call params for logging.
func toolName(req *jsonrpcRequest) string {
	if req.Method != "tools/call" || len(req.Params) == 0 {
		return ""
	}
	var p toolsCallParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return ""
	}
	return p.Name
}
