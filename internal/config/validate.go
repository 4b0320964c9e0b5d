package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := validateHTTPURL(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must be >= 0 (got %v)", c.Backend.Timeout)
	}

	if c.Speech.Enabled() {
		if err := validateHTTPURL(c.Speech.URL); err != nil {
			return fmt.Errorf("speech.url: %w", err)
		}
		if strings.TrimSpace(c.Speech.OutputDir) == "" {
			return fmt.Errorf("speech.output_dir is required when speech is enabled")
		}
	}
	if c.Speech.Timeout < 0 {
		return fmt.Errorf("speech.timeout must be >= 0 (got %v)", c.Speech.Timeout)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ActionsPerMinute < 0 {
		return fmt.Errorf("server.actions_per_minute must be >= 0 (got %d)", c.Server.ActionsPerMinute)
	}

	if c.TUI.Indent < 0 || c.TUI.Indent > 8 {
		return fmt.Errorf("tui.indent must be in 0..8 (got %d)", c.TUI.Indent)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
