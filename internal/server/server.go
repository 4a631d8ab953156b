// Package server implements the MCP request dispatch core and its two
// transports: JSON-RPC 2.0 over stdio with Content-Length framing, and an
// HTTP surface for hosts that prefer request/response.
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwiater/handytools/internal/appconfig"
	"github.com/mwiater/handytools/mcp/prompts"
	"github.com/mwiater/handytools/mcp/resources"
	"github.com/mwiater/handytools/mcp/tools"
)

const (
	// Name identifies this server to MCP hosts.
	Name = "handytools"
	// Version is the reported server version.
	Version = "0.1.0"
	// Description summarizes the server for the server-info resource.
	Description = "Utility MCP server: greetings, arithmetic, timezone clock, geocoding, weather forecasts, and image generation."
	// protocolVersion is the MCP revision this server speaks.
	protocolVersion = "2024-11-05"
)

// --- Protocol data types ---

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonrpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id,omitempty"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonrpcError `json:"error,omitempty"`
}

// tools/call params
type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// resources/read params
type resourcesReadParams struct {
	URI string `json:"uri"`
}

// prompts/get params
type promptsGetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

// Server holds the tool registry and the resource and prompt providers. It is
// read-only after construction and safe for concurrent dispatch.
type Server struct {
	registry *tools.Registry
	info     *resources.ServerInfo
}

// New builds a server with the six built-in tools registered.
func New(cfg *appconfig.Config) (*Server, error) {
	registry, err := tools.DefaultRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	return NewWithRegistry(registry), nil
}

// NewWithRegistry builds a server around an existing registry.
func NewWithRegistry(registry *tools.Registry) *Server {
	return &Server{
		registry: registry,
		info:     resources.NewServerInfo(Name, Version, Description, registry),
	}
}

// Registry exposes the tool registry, mainly for the CLI commands.
func (s *Server) Registry() *tools.Registry { return s.registry }

// --- RPC Helpers ---

func makeResult(id any, result any) jsonrpcResponse {
	return jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func makeError(id any, code int, msg string) jsonrpcResponse {
	return jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: &jsonrpcError{Code: code, Message: msg}}
}

// handle dispatches a single JSON-RPC request to the matching provider.
func (s *Server) handle(req *jsonrpcRequest) jsonrpcResponse {
	switch req.Method {
	case "initialize":
		result := map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo":      map[string]any{"name": Name, "version": Version},
			"capabilities": map[string]any{
				"tools":     map[string]any{"list": true, "call": true},
				"resources": map[string]any{"list": true, "read": true},
				"prompts":   map[string]any{"list": true, "get": true},
			},
		}
		return makeResult(req.ID, result)

	case "ping":
		return makeResult(req.ID, map[string]any{})

	case "tools/list":
		return makeResult(req.ID, map[string]any{"tools": s.registry.Definitions()})

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, -32602, "Invalid params")
			}
		}
		content, err := s.registry.Dispatch(p.Name, p.Arguments)
		if err != nil {
			return makeError(req.ID, dispatchErrorCode(err), err.Error())
		}
		return makeResult(req.ID, map[string]any{"content": content})

	case "resources/list":
		return makeResult(req.ID, map[string]any{"resources": []resources.Definition{s.info.Definition()}})

	case "resources/read":
		var p resourcesReadParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, -32602, "Invalid params")
			}
		}
		if p.URI != resources.ServerInfoURI {
			return makeError(req.ID, -32602, fmt.Sprintf("Unknown resource: %s", p.URI))
		}
		text, err := s.info.Read()
		if err != nil {
			return makeError(req.ID, -32603, err.Error())
		}
		return makeResult(req.ID, map[string]any{
			"contents": []map[string]any{{
				"uri":      resources.ServerInfoURI,
				"mimeType": resources.ServerInfoMimeType,
				"text":     text,
			}},
		})

	case "prompts/list":
		return makeResult(req.ID, map[string]any{"prompts": []prompts.Definition{prompts.CodeReviewDefinition()}})

	case "prompts/get":
		var p promptsGetParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, -32602, "Invalid params")
			}
		}
		if p.Name != prompts.CodeReviewName {
			return makeError(req.ID, -32602, fmt.Sprintf("Unknown prompt: %s", p.Name))
		}
		messages, err := prompts.CodeReview(p.Arguments)
		if err != nil {
			return makeError(req.ID, -32602, err.Error())
		}
		return makeResult(req.ID, map[string]any{
			"description": prompts.CodeReviewDefinition().Description,
			"messages":    messages,
		})
	}

	return makeError(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method))
}

// dispatchErrorCode maps registry errors onto JSON-RPC codes: caller mistakes
// (unknown tool, invalid arguments) are -32602, everything else is a
// server-side failure.
func dispatchErrorCode(err error) int {
	var argErr *tools.ArgumentError
	if errors.Is(err, tools.ErrUnknownTool) || errors.As(err, &argErr) {
		return -32602
	}
	return -32603
}
