package config

// PropertiesConfig controls generation of the git build-metadata
// properties file.
type PropertiesConfig struct {
	// Enabled writes the properties file as part of "crossforge build".
	Enabled bool `yaml:"enabled"`

	// Repo is the git repository path. Default: ".".
	Repo string `yaml:"repo"`

	// Path is the properties file path. Default: "build/git.properties".
	Path string `yaml:"path"`

	// GVersionCompat emits the legacy gversion key names (git_date, dirty=0|1).
	GVersionCompat bool `yaml:"gversion_compat"`

	// BuildDate adds a build_date entry with the generation time.
	BuildDate bool `yaml:"build_date"`
}

// DefaultPropertiesConfig returns the properties defaults.
func DefaultPropertiesConfig() PropertiesConfig {
	return PropertiesConfig{
		Repo: ".",
		Path: "build/git.properties",
	}
}
