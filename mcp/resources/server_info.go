// Package resources implements the read-only documents exposed alongside the
// tools.
package resources

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/mwiater/handytools/mcp/tools"
)

// ServerInfoURI is the fixed URI naming the server-info document.
const ServerInfoURI = "handytools://server-info"

// ServerInfoMimeType is the content type of the server-info document.
const ServerInfoMimeType = "application/json"

// Definition describes a resource to the MCP host.
type Definition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// toolInfo is one entry of the tool list embedded in the document.
type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// serverInfo is the document shape serialized on every read.
type serverInfo struct {
	Name        string     `json:"name"`
	Version     string     `json:"version"`
	Description string     `json:"description"`
	Tools       []toolInfo `json:"tools"`
	Runtime     struct {
		OS        string `json:"os"`
		Arch      string `json:"arch"`
		GoVersion string `json:"goVersion"`
	} `json:"runtime"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// ServerInfo serves the server identity and uptime document. The document is
// derived fresh on every read; nothing is persisted.
type ServerInfo struct {
	name        string
	version     string
	description string
	registry    *tools.Registry
	startedAt   time.Time
	now         func() time.Time
}

// NewServerInfo builds the server-info provider around the given registry,
// recording the process start instant.
func NewServerInfo(name, version, description string, registry *tools.Registry) *ServerInfo {
	return &ServerInfo{
		name:        name,
		version:     version,
		description: description,
		registry:    registry,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// Definition describes the server-info resource to the MCP host.
func (s *ServerInfo) Definition() Definition {
	return Definition{
		URI:         ServerInfoURI,
		Name:        "Server Info",
		Description: "Server identity, registered tools, runtime facts, and uptime.",
		MimeType:    ServerInfoMimeType,
	}
}

// Read serializes the current server-info document as JSON text.
func (s *ServerInfo) Read() (string, error) {
	now := s.now()

	info := serverInfo{
		Name:        s.name,
		Version:     s.version,
		Description: s.description,
		StartedAt:   s.startedAt.UTC().Format(time.RFC3339),
		Uptime:      formatUptime(now.Sub(s.startedAt)),
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
	info.Runtime.OS = runtime.GOOS
	info.Runtime.Arch = runtime.GOARCH
	info.Runtime.GoVersion = runtime.Version()

	for _, def := range s.registry.Definitions() {
		info.Tools = append(info.Tools, toolInfo{Name: def.Name, Description: def.Description})
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal server info: %w", err)
	}
	return string(data), nil
}

// formatUptime renders a duration as hours, minutes, and seconds.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
