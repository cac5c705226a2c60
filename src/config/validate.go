package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/crossforge/src/fonts"
)

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Native ────────────────────────────────────────────────────────────

	n := cfg.Native
	if strings.TrimSpace(n.Command) == "" {
		errs = append(errs, "native.command: is required")
	}
	if n.InstallTargets && strings.TrimSpace(n.InstallCommand) == "" {
		errs = append(errs, "native.install_command: is required when install_targets is set")
	}
	if n.OutputDir == "" {
		errs = append(errs, "native.output_dir: is required")
	}
	if n.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("native.timeout: must not be negative, got %s", n.Timeout))
	}
	if n.MinToolchain != "" {
		if _, cerr := semver.NewConstraint(n.MinToolchain); cerr != nil {
			errs = append(errs, fmt.Sprintf("native.min_toolchain: invalid constraint %q: %v", n.MinToolchain, cerr))
		}
	}

	if len(n.AllTargets()) == 0 {
		warnings = append(warnings, "native.targets: no targets declared and default_target is off; nothing to build")
	}

	keys := make(map[string]bool)
	for i, t := range n.Targets {
		tpath := fmt.Sprintf("native.targets[%d]", i)

		switch {
		case t.Key == "":
			errs = append(errs, fmt.Sprintf("%s: key is required", tpath))
		case t.Key == HostTargetKey && n.DefaultTarget:
			errs = append(errs, fmt.Sprintf("%s: key %q is reserved for the default target", tpath, HostTargetKey))
		case keys[t.Key]:
			errs = append(errs, fmt.Sprintf("%s: duplicate target key %q", tpath, t.Key))
		default:
			keys[t.Key] = true
		}
		if t.Key != "" && !isPathSegment(t.Key) {
			errs = append(errs, fmt.Sprintf("%s: key %q must be a single path segment", tpath, t.Key))
		}

		if t.Triple != "" && strings.Count(t.Triple, "-") < 1 {
			errs = append(errs, fmt.Sprintf("%s: triple %q is not of the form <arch>-<vendor>-<os>[-<env>]", tpath, t.Triple))
		}

		if t.OutputName != "" && !isPathSegment(t.OutputName) {
			errs = append(errs, fmt.Sprintf("%s: output_name %q must be a file basename", tpath, t.OutputName))
		}
	}

	// ── Properties ────────────────────────────────────────────────────────

	if cfg.Properties.Enabled && cfg.Properties.Path == "" {
		errs = append(errs, "properties.path: is required when properties are enabled")
	}

	// ── Report ────────────────────────────────────────────────────────────

	if !validChecksums[cfg.Report.Checksum] {
		algos := make([]string, 0, len(validChecksums))
		for a := range validChecksums {
			algos = append(algos, a)
		}
		sort.Strings(algos)
		errs = append(errs, fmt.Sprintf("report.checksum: unknown algorithm %q (supported: %s)", cfg.Report.Checksum, strings.Join(algos, ", ")))
	}

	if cfg.Report.Badge != "" && cfg.Report.BadgeFont != "" {
		if _, ok := fonts.Lookup(cfg.Report.BadgeFont); !ok {
			ext := strings.ToLower(filepath.Ext(cfg.Report.BadgeFont))
			if ext != ".ttf" && ext != ".otf" {
				errs = append(errs, fmt.Sprintf("report.badge_font: unknown font %q (built-in: %s, or a .ttf/.otf path)",
					cfg.Report.BadgeFont, strings.Join(fonts.Names(), ", ")))
			}
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

// isPathSegment reports whether s is a plain file or directory name.
func isPathSegment(s string) bool {
	if s == "." || s == ".." || strings.ContainsAny(s, `/\:`) {
		return false
	}
	return filepath.Base(s) == s
}
