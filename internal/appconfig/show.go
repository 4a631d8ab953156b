package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Request Timeout: %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  HTTP Listen:     %s\n", cfg.ListenAddr())
	fmt.Fprintf(out, "  User-Agent:      %s\n", cfg.ClientUserAgent())
	fmt.Fprintf(out, "  Geocode URL:     %s\n", cfg.GeocodeBaseURL())
	fmt.Fprintf(out, "  Forecast URL:    %s\n", cfg.ForecastBaseURL())
	fmt.Fprintf(out, "  Inference URL:   %s\n", cfg.InferenceBaseURL())
	if cfg.HFToken == "" {
		fmt.Fprintln(out, "  HF Token:        (not set — generate_image disabled)")
	} else {
		fmt.Fprintln(out, "  HF Token:        (set)")
	}
}
