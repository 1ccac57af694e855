package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
	OutputYAML: true,
}

// Validate checks the config for invalid values and returns all errors found.
// Invalid values are reset to their defaults and logged as warnings; none of
// them prevent a run.
func (c *Config) Validate() []error {
	var errs []error
	def := Default()

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
		c.LogLevel = def.LogLevel
	}

	if c.LogFormat != "" && !strings.EqualFold(c.LogFormat, "text") && !strings.EqualFold(c.LogFormat, "json") {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
		c.LogFormat = def.LogFormat
	}

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output == "" {
		c.Output = def.Output
	} else if !validOutputs[c.Output] {
		errs = append(errs, fmt.Errorf("output %q is not valid (use text, json or yaml)", c.Output))
		c.Output = def.Output
	}

	for _, err := range errs {
		slog.Warn("config validation", "error", err)
	}

	return errs
}
