package config

import "time"

// NativeConfig controls cross-compilation of the native library.
type NativeConfig struct {
	// Release builds with optimizations (--release). Default: true.
	Release bool `yaml:"release"`

	// Command is the toolchain build command. Default: "cargo".
	Command string `yaml:"command"`

	// InstallTargets runs "<install_command> target add <triple>" before
	// each build. When false, targets are assumed to be pre-installed.
	InstallTargets bool `yaml:"install_targets"`

	// InstallCommand is the target installer. Default: "rustup".
	InstallCommand string `yaml:"install_command"`

	// SourceDir is the native source tree (directory holding Cargo.toml).
	SourceDir string `yaml:"source_dir"`

	// OutputDir is the root of the per-platform output tree.
	OutputDir string `yaml:"output_dir"`

	// Timeout bounds each target build. Zero = no deadline.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MinToolchain is a semver constraint checked against
	// "<command> --version" before any target runs. e.g. ">= 1.70.0".
	MinToolchain string `yaml:"min_toolchain,omitempty"`

	// DefaultTarget prepends a host target with key "host".
	DefaultTarget bool `yaml:"default_target"`

	// Targets are built in declaration order.
	Targets []TargetConfig `yaml:"targets"`
}

// DefaultNativeConfig returns the native build defaults.
func DefaultNativeConfig() NativeConfig {
	return NativeConfig{
		Release:        true,
		Command:        "cargo",
		InstallCommand: "rustup",
		SourceDir:      "native",
		OutputDir:      "build/native",
	}
}

// AllTargets returns the declared targets, with the host target first
// when DefaultTarget is set.
func (n NativeConfig) AllTargets() []TargetConfig {
	out := make([]TargetConfig, 0, len(n.Targets)+1)
	if n.DefaultTarget {
		out = append(out, TargetConfig{Key: HostTargetKey})
	}
	return append(out, n.Targets...)
}

// Select returns the targets whose key is in keys, preserving declaration
// order. An empty keys list selects everything.
func (n NativeConfig) Select(keys []string) []TargetConfig {
	all := n.AllTargets()
	if len(keys) == 0 {
		return all
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []TargetConfig
	for _, t := range all {
		if want[t.Key] {
			out = append(out, t)
		}
	}
	return out
}
