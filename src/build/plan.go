package build

import (
	"fmt"
	"time"

	"github.com/sofmeright/crossforge/src/config"
)

// Config is the resolved, read-only configuration of one orchestrator run.
type Config struct {
	Release        bool
	Command        string
	InstallTargets bool
	InstallCommand string
	SourceDir      string
	OutputRoot     string
	Timeout        time.Duration // per target, 0 = none
	MinToolchain   string        // semver constraint, "" = no check
	Targets        []TargetSpec
}

// TargetSpec is one declared target. Values are never mutated after load.
type TargetSpec struct {
	Key        string // output bucket: <OutputRoot>/<Key>/<OutputName>
	Triple     string // "" = host triple
	OutputName string // "" = toolchain default artifact name
}

// FromConfig converts the native config section into a run Config.
// keys restricts the targets (declaration order is kept); nil = all.
func FromConfig(n config.NativeConfig, keys []string) Config {
	selected := n.Select(keys)
	targets := make([]TargetSpec, 0, len(selected))
	for _, t := range selected {
		targets = append(targets, TargetSpec{
			Key:        t.Key,
			Triple:     t.Triple,
			OutputName: t.OutputName,
		})
	}
	return Config{
		Release:        n.Release,
		Command:        n.Command,
		InstallTargets: n.InstallTargets,
		InstallCommand: n.InstallCommand,
		SourceDir:      n.SourceDir,
		OutputRoot:     n.OutputDir,
		Timeout:        n.Timeout,
		MinToolchain:   n.MinToolchain,
		Targets:        targets,
	}
}

// Profile returns the toolchain profile name for the build mode.
func (c Config) Profile() string {
	if c.Release {
		return "release"
	}
	return "debug"
}

// KeyWarnings reports targets whose key disagrees with the platform key
// derived from their triple, e.g. key "linux-x86_64" with an apple triple.
func (c Config) KeyWarnings() []string {
	var warnings []string
	for _, t := range c.Targets {
		if t.Triple == "" {
			continue
		}
		p, err := ParseTriple(t.Triple)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("target %s: %v", t.Key, err))
			continue
		}
		if want := p.Key(); want != t.Key {
			warnings = append(warnings, fmt.Sprintf("target %s: triple %s is platform %s", t.Key, t.Triple, want))
		}
	}
	return warnings
}
