package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossforge/src/build"
	"github.com/sofmeright/crossforge/src/config"
	"github.com/sofmeright/crossforge/src/gitprops"
	"github.com/sofmeright/crossforge/src/output"
	"github.com/sofmeright/crossforge/src/redact"
	"github.com/sofmeright/crossforge/src/version"
)

var (
	bRelease        bool
	bDebug          bool
	bInstallTargets bool
	bTargets        []string
	bDryRun         bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the native library for every target",
	Long: `Build the native library once per declared target, in order.

A failing target is recorded and the run continues with the next one.
The command exits non-zero after the final report if any target failed.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&bRelease, "release", false, "force an optimized build")
	buildCmd.Flags().BoolVar(&bDebug, "debug", false, "force an unoptimized build")
	buildCmd.Flags().BoolVar(&bInstallTargets, "install-targets", false, "install each target triple before building")
	buildCmd.Flags().StringSliceVar(&bTargets, "target", nil, "build only these target keys (comma-separated)")
	buildCmd.Flags().BoolVar(&bDryRun, "dry-run", false, "show the resolved plan without building")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if bRelease && bDebug {
		return fmt.Errorf("--release and --debug are mutually exclusive")
	}
	native := cfg.Native
	switch {
	case bRelease:
		native.Release = true
	case bDebug:
		native.Release = false
	}
	if bInstallTargets {
		native.InstallTargets = true
	}
	cfg.Native = native

	warnings, err := config.Validate(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := checkTargetKeys(native, bTargets); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color := output.UseColor()
	w := os.Stdout
	start := time.Now()

	runCfg := build.FromConfig(native, bTargets)
	warnings = append(warnings, runCfg.KeyWarnings()...)

	cargo := build.NewCargo(native.Command, native.InstallCommand, native.SourceDir, verbose)
	warnings = append(warnings, crateWarnings(cargo)...)
	printRunHeader(w, runCfg, warnings, color)

	orch := build.NewOrchestrator(runCfg, cargo, verbose)
	if cfg.Report.RedactSecrets {
		r := redact.New()
		if err := r.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: secret redaction disabled: %v\n", err)
		} else {
			orch.Redactor = r
		}
	}

	if bDryRun {
		plan := make([]build.PlannedTarget, 0, len(runCfg.Targets))
		for _, t := range runCfg.Targets {
			p := orch.Describe(t)
			if verbose {
				fmt.Fprintln(os.Stderr, p.String())
			}
			plan = append(plan, p)
		}
		output.PlanReport(w, runCfg.Profile(), plan, color)
		return nil
	}

	output.SectionStart(w, "cf_native", "Native build")
	results := orch.Run(ctx)
	output.SectionEnd(w, "cf_native")

	reportErrs := writeReports(ctx, runCfg, results, time.Since(start))

	output.BuildReport(w, results, time.Since(start), color)

	s := build.Summarize(results)
	if !s.OK() {
		reportErrs = append([]error{fmt.Errorf("%d of %d targets failed", s.Failed, s.Total)}, reportErrs...)
	}
	return errors.Join(reportErrs...)
}

// writeReports emits the manifest, JUnit, badge, and git properties
// configured for the run. Each failure is collected; none stops the others.
func writeReports(ctx context.Context, runCfg build.Config, results []build.BuildResult, elapsed time.Duration) []error {
	var errs []error

	if cfg.Report.Manifest {
		if err := build.Checksums(ctx, results, cfg.Report.Checksum); err != nil {
			errs = append(errs, fmt.Errorf("checksums: %w", err))
		}
		path, err := build.WriteManifest(runCfg.OutputRoot, build.NewManifest(runCfg, results, cfg.Report.Checksum))
		if err != nil {
			errs = append(errs, err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "manifest: %s\n", path)
		}
	}

	if cfg.Report.JUnitDir != "" {
		path, err := output.WriteBuildJUnit(cfg.Report.JUnitDir, results, elapsed)
		if err != nil {
			errs = append(errs, err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "junit: %s\n", path)
		}
	}

	if cfg.Report.Badge != "" {
		s := build.Summarize(results)
		if err := writeRunBadge(cfg.Report.Badge, cfg.Report.BadgeFont, s.Succeeded, s.Total); err != nil {
			errs = append(errs, err)
		}
	}

	if cfg.Properties.Enabled {
		if _, err := gitprops.Write(cfg.Properties.Repo, cfg.Properties.Path, propertiesOptions(cfg.Properties)); err != nil {
			errs = append(errs, fmt.Errorf("git properties: %w", err))
		}
	}

	return errs
}

func printRunHeader(w io.Writer, runCfg build.Config, warnings []string, color bool) {
	var sha, branch string
	var dirty bool
	if d, err := gitprops.Collect(cfg.Properties.Repo); err == nil {
		sha, branch, dirty = d.SHA, d.Branch, d.Dirty
	}
	output.Banner(w, output.NewBannerInfo(version.Version, sha, branch, dirty), color)
	output.CIHeader(w)

	output.ContextBlock(w, []output.KV{
		{Key: "profile", Value: runCfg.Profile()},
		{Key: "toolchain", Value: runCfg.Command},
		{Key: "source", Value: runCfg.SourceDir},
		{Key: "output", Value: runCfg.OutputRoot},
		{Key: "targets", Value: fmt.Sprintf("%d", len(runCfg.Targets))},
		{Key: "install", Value: fmt.Sprintf("%t", runCfg.InstallTargets)},
	})

	if len(warnings) > 0 {
		sec := output.NewSection(w, "Config", 0, color)
		output.Warnings(sec, warnings, color)
		sec.Close()
	}
}

// crateWarnings flags crates that cannot produce a shared library; their
// targets would each end in ErrArtifactNotFound.
func crateWarnings(c *build.Cargo) []string {
	crate, err := c.Crate()
	if err != nil {
		return []string{err.Error()}
	}
	if !crate.IsSharedLibrary() {
		return []string{fmt.Sprintf("crate %s declares no cdylib or dylib crate-type; no shared library will be produced", crate.Name)}
	}
	return nil
}

// checkTargetKeys rejects --target values that name no declared target.
func checkTargetKeys(n config.NativeConfig, keys []string) error {
	known := make(map[string]bool)
	for _, t := range n.AllTargets() {
		known[t.Key] = true
	}
	for _, k := range keys {
		if !known[k] {
			return fmt.Errorf("unknown target %q", k)
		}
	}
	return nil
}
