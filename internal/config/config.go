package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the ambient settings of a report run. None of them change
// which updates are reported.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Output    string `mapstructure:"output"`
	NoColor   bool   `mapstructure:"no_color"`
}

func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Output:    OutputText,
	}
}

// Load reads cfgFile, or fwreport.yaml from the config dir or the working
// directory when cfgFile is empty. A missing default file is not an error.
// FWREPORT_* environment variables override file values.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()
	v := viper.New()

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("no_color", cfg.NoColor)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("fwreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FWREPORT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "Breeze", "fwreport")
	case "darwin":
		return "/Library/Application Support/Breeze/fwreport"
	default:
		return "/etc/breeze/fwreport"
	}
}
