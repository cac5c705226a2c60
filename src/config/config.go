package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".crossforge.yml"

// Config is the top-level crossforge configuration.
type Config struct {
	Native     NativeConfig     `yaml:"native"`
	Properties PropertiesConfig `yaml:"properties"`
	Report     ReportConfig     `yaml:"report"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file in the working directory,
// then the per-user file under the XDG config home.
// Returns sensible defaults if no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findDefault()
	}
	if path == "" {
		return defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML config bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserConfigPath returns the per-user config file location.
//
//	Linux:   $XDG_CONFIG_HOME/crossforge/config.yml
//	macOS:   ~/Library/Application Support/crossforge/config.yml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "crossforge", "config.yml")
}

// findDefault returns the first existing default config file, or "".
func findDefault() string {
	for _, p := range []string{defaultConfigFile, UserConfigPath()} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func defaults() *Config {
	return &Config{
		Native:     DefaultNativeConfig(),
		Properties: DefaultPropertiesConfig(),
		Report:     DefaultReportConfig(),
	}
}
