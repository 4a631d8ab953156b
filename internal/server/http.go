package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mwiater/handytools/internal/logging"
	"github.com/mwiater/handytools/mcp/prompts"
	"github.com/mwiater/handytools/mcp/resources"
)

// httpCallRequest is the body of POST /mcp/call.
type httpCallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// httpPromptRequest is the body of POST /mcp/prompt.
type httpPromptRequest struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

// Router builds the HTTP transport: a health endpoint plus the MCP surface
// behind optional bearer-token auth.
func (s *Server) Router(token string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/mcp", func(r chi.Router) {
		r.Use(bearerAuth(token))
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
		r.Get("/resource", s.handleResource)
		r.Post("/prompt", s.handlePrompt)
	})

	return r
}

// bearerAuth rejects requests without the configured token. An empty token
// disables auth.
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			if r.Header.Get("Authorization") != "Bearer "+token {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.Definitions()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req httpCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	logging.LogRequest("in", "http", req.Name, req.Arguments)
	content, err := s.registry.Dispatch(req.Name, req.Arguments)
	if err != nil {
		status := http.StatusBadRequest
		if dispatchErrorCode(err) == -32603 {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

func (s *Server) handleResource(w http.ResponseWriter, _ *http.Request) {
	text, err := s.info.Read()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", resources.ServerInfoMimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req httpPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name != prompts.CodeReviewName {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown prompt: " + req.Name})
		return
	}
	messages, err := prompts.CodeReview(req.Arguments)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
