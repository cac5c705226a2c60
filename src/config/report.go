package config

// ReportConfig controls the reports written after a build run.
type ReportConfig struct {
	// JUnitDir receives native.xml (one test case per target). Empty = off.
	JUnitDir string `yaml:"junit_dir,omitempty"`

	// Badge is an SVG badge output path. Empty = off.
	Badge string `yaml:"badge,omitempty"`

	// BadgeFont is a built-in font name. Default: "go-regular".
	BadgeFont string `yaml:"badge_font,omitempty"`

	// Manifest writes manifest.json with checksums into the output root.
	Manifest bool `yaml:"manifest"`

	// Checksum is the manifest digest algorithm: "sha256" or "blake2b-256".
	Checksum string `yaml:"checksum"`

	// RedactSecrets scrubs detected secrets from captured toolchain output.
	RedactSecrets bool `yaml:"redact_secrets"`
}

// validChecksums enumerates the supported manifest digests.
var validChecksums = map[string]bool{
	"sha256":      true,
	"blake2b-256": true,
}

// DefaultReportConfig returns the report defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		BadgeFont:     "go-regular",
		Manifest:      true,
		Checksum:      "sha256",
		RedactSecrets: true,
	}
}
