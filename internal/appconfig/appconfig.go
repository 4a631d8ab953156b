// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for outbound HTTP requests.
	defaultRequestTimeout = 30 * time.Second
	// defaultGeocodeURL is the public Nominatim endpoint.
	defaultGeocodeURL = "https://nominatim.openstreetmap.org"
	// defaultForecastURL is the public Open-Meteo endpoint.
	defaultForecastURL = "https://api.open-meteo.com"
	// defaultInferenceURL is the Hugging Face inference router endpoint.
	defaultInferenceURL = "https://router.huggingface.co"
	// defaultUserAgent identifies this server to upstream services that
	// require an identifying header.
	defaultUserAgent = "handytools-mcp/1.0 (github.com/mwiater/handytools)"
	// defaultHTTPAddr is the listen address for the optional HTTP transport.
	defaultHTTPAddr = ":8085"
	// hfTokenEnv is the environment variable holding the image-generation credential.
	hfTokenEnv = "HF_TOKEN"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug          bool   `json:"debug"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string `json:"logFile,omitempty"`
	HTTPAddr       string `json:"httpAddr,omitempty"`
	HTTPToken      string `json:"httpToken,omitempty"`
	UserAgent      string `json:"userAgent,omitempty"`
	GeocodeURL     string `json:"geocodeUrl,omitempty"`
	ForecastURL    string `json:"forecastUrl,omitempty"`
	InferenceURL   string `json:"inferenceUrl,omitempty"`
	ServerBinary   string `json:"serverBinary,omitempty"`

	// HFToken is sourced from the environment only, never from the file. Its
	// absence is a handled tool-level condition, not a startup failure.
	HFToken    string `json:"-"`
	ConfigPath string `json:"-"`
}

// RequestTimeout returns the timeout for outbound HTTP requests, falling back
// to the default if not specified.
func (c *Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c *Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	return "handytools.log"
}

// ListenAddr returns the HTTP transport listen address.
func (c *Config) ListenAddr() string {
	if addr := strings.TrimSpace(c.HTTPAddr); addr != "" {
		return addr
	}
	return defaultHTTPAddr
}

// ClientUserAgent returns the identifying User-Agent sent to upstream services.
func (c *Config) ClientUserAgent() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}

// GeocodeBaseURL returns the geocoding service base URL without a trailing slash.
func (c *Config) GeocodeBaseURL() string {
	return baseURL(c.GeocodeURL, defaultGeocodeURL)
}

// ForecastBaseURL returns the forecast service base URL without a trailing slash.
func (c *Config) ForecastBaseURL() string {
	return baseURL(c.ForecastURL, defaultForecastURL)
}

// InferenceBaseURL returns the inference router base URL without a trailing slash.
func (c *Config) InferenceBaseURL() string {
	return baseURL(c.InferenceURL, defaultInferenceURL)
}

// ServerBinaryPath returns the server binary the check command spawns.
func (c *Config) ServerBinaryPath() string {
	if b := strings.TrimSpace(c.ServerBinary); b != "" {
		return b
	}
	return "handytools"
}

func baseURL(configured, fallback string) string {
	if u := strings.TrimSpace(configured); u != "" {
		return strings.TrimRight(u, "/")
	}
	return fallback
}

// Load reads the application configuration from the specified path, with
// fallback to a legacy path. A missing default config file is not an error:
// every setting has a workable default, so Load returns a zero config with
// the environment credential applied.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		config.HFToken = os.Getenv(hfTokenEnv)
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			if config, legacyErr := loadFromPath(legacyConfigPath); legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				config.HFToken = os.Getenv(hfTokenEnv)
				return config, nil
			}
		}
		if !explicit {
			return &Config{HFToken: os.Getenv(hfTokenEnv)}, nil
		}
		return nil, fmt.Errorf("no configuration file found at %q", path)
	}

	return nil, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
