// Package build cross-compiles a native library for a declared list of
// target triples and lays the renamed artifacts out per platform key.
//
// Targets are built strictly one at a time in declaration order. Cross
// toolchains share global state (registries, linker caches) and the native
// source tree is owned by the toolchain, so builds are never overlapped.
// A failing target is recorded and the run moves on to the next one.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Redactor scrubs sensitive values from captured toolchain output.
type Redactor interface {
	Redact(s string) string
}

// Orchestrator runs the per-target build pipeline:
// resolve triple, ensure toolchain target, build, collect artifact.
type Orchestrator struct {
	Config    Config
	Toolchain Toolchain
	Redactor  Redactor // optional
	Verbose   bool
	Stdout    io.Writer
	Stderr    io.Writer

	// HostTriple resolves the default target. Defaults to CurrentHostTriple.
	HostTriple func() (string, error)
}

// NewOrchestrator creates an orchestrator with default output writers.
func NewOrchestrator(cfg Config, tc Toolchain, verbose bool) *Orchestrator {
	return &Orchestrator{
		Config:     cfg,
		Toolchain:  tc,
		Verbose:    verbose,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		HostTriple: CurrentHostTriple,
	}
}

// ResolveDefaultTarget returns the host platform's triple.
func (o *Orchestrator) ResolveDefaultTarget() (string, error) {
	if o.HostTriple == nil {
		return CurrentHostTriple()
	}
	return o.HostTriple()
}

// ResolveTriple returns the target's explicit triple, or the host triple.
func (o *Orchestrator) ResolveTriple(t TargetSpec) (string, error) {
	if t.Triple != "" {
		return t.Triple, nil
	}
	triple, err := o.ResolveDefaultTarget()
	if err != nil {
		var te *TargetError
		if errors.As(err, &te) {
			te.Target = t.Key
			return "", te
		}
		return "", &TargetError{Kind: ErrUnsupportedHost, Target: t.Key, Msg: err.Error()}
	}
	return triple, nil
}

// CheckToolchain verifies the toolchain version against Config.MinToolchain.
func (o *Orchestrator) CheckToolchain(ctx context.Context) error {
	if o.Config.MinToolchain == "" {
		return nil
	}
	out, err := o.Toolchain.Version(ctx)
	if err != nil {
		return &TargetError{Kind: ErrToolchainMissing, Msg: err.Error()}
	}
	if err := CheckVersion(out, o.Config.MinToolchain); err != nil {
		return &TargetError{Kind: ErrToolchainMissing, Msg: err.Error()}
	}
	return nil
}

// EnsureToolchainTarget installs cross support for triple when
// Config.InstallTargets is set. Otherwise the target is assumed present.
func (o *Orchestrator) EnsureToolchainTarget(ctx context.Context, key, triple string) error {
	if !o.Config.InstallTargets {
		return nil
	}
	if err := o.Toolchain.InstallTarget(ctx, triple); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return targetErrorf(ErrTimeout, key, "installing %s: deadline of %s exceeded", triple, o.Config.Timeout)
		case errors.Is(ctx.Err(), context.Canceled):
			return targetErrorf(ErrCanceled, key, "installing %s: %v", triple, ctx.Err())
		}
		return &TargetError{Kind: ErrToolchainMissing, Target: key, Msg: err.Error()}
	}
	return nil
}

// Build invokes the toolchain for one target and blocks until it exits.
// A non-zero exit yields Success=false with the captured error stream in
// ErrorMessage.
func (o *Orchestrator) Build(ctx context.Context, t TargetSpec, triple string) BuildResult {
	start := time.Now()
	res := BuildResult{Target: t, Triple: triple}

	var diag bytes.Buffer
	stdout := io.Discard
	var stderr io.Writer = &diag
	if o.Verbose {
		stdout = o.out()
		stderr = io.MultiWriter(&diag, o.errOut())
	}

	err := o.Toolchain.Build(ctx, Invocation{
		Triple:  triple,
		Release: o.Config.Release,
		Dir:     o.Config.SourceDir,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	res.Duration = time.Since(start)
	if err == nil {
		res.Success = true
		return res
	}

	diagnostics := o.redact(strings.TrimSpace(diag.String()))
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		te := targetErrorf(ErrTimeout, t.Key, "deadline of %s exceeded", o.Config.Timeout)
		te.Diagnostics = diagnostics
		return fail(res, te)
	case errors.Is(ctx.Err(), context.Canceled):
		te := targetErrorf(ErrCanceled, t.Key, "%v", ctx.Err())
		te.Diagnostics = diagnostics
		return fail(res, te)
	}

	te := &TargetError{Kind: ErrCompile, Target: t.Key, Msg: o.redact(err.Error()), Diagnostics: diagnostics}
	res = fail(res, te)
	if diagnostics != "" {
		res.ErrorMessage = diagnostics
	}
	return res
}

// DestinationPath returns <OutputRoot>/<Key>/<OutputName>. An empty
// OutputName falls back to the toolchain's artifact name.
func (o *Orchestrator) DestinationPath(t TargetSpec, triple string) (string, error) {
	name := t.OutputName
	if name == "" {
		src, err := o.Toolchain.ArtifactPath(triple, o.Config.Release)
		if err != nil {
			return "", err
		}
		name = filepath.Base(src)
	}
	return filepath.Join(o.Config.OutputRoot, t.Key, name), nil
}

// CollectArtifact copies the toolchain's output for a built target to its
// destination and returns the destination path.
func (o *Orchestrator) CollectArtifact(t TargetSpec, triple string) (string, error) {
	src, err := o.Toolchain.ArtifactPath(triple, o.Config.Release)
	if err != nil {
		return "", targetErrorf(ErrArtifactNotFound, t.Key, "resolving artifact path: %v", err)
	}

	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", targetErrorf(ErrArtifactNotFound, t.Key, "expected %s after a successful build", src)
		}
		return "", targetErrorf(ErrArtifactNotFound, t.Key, "%v", err)
	}

	dest, err := o.DestinationPath(t, triple)
	if err != nil {
		return "", targetErrorf(ErrCollect, t.Key, "%v", err)
	}
	if err := copyFile(src, dest); err != nil {
		return "", targetErrorf(ErrCollect, t.Key, "%s → %s: %v", src, dest, err)
	}
	return dest, nil
}

// Run builds every target in declaration order and returns exactly one
// result per target. Failures are recorded, never fatal to the run.
func (o *Orchestrator) Run(ctx context.Context) []BuildResult {
	results := make([]BuildResult, 0, len(o.Config.Targets))

	if err := o.CheckToolchain(ctx); err != nil {
		for _, t := range o.Config.Targets {
			te := &TargetError{Kind: ErrToolchainMissing, Target: t.Key, Msg: err.Error()}
			var gate *TargetError
			if errors.As(err, &gate) {
				te.Msg = gate.Msg
			}
			results = append(results, fail(BuildResult{Target: t}, te))
		}
		return results
	}

	for _, t := range o.Config.Targets {
		if ctx.Err() != nil {
			results = append(results, fail(BuildResult{Target: t}, targetErrorf(ErrCanceled, t.Key, "%v", ctx.Err())))
			continue
		}
		results = append(results, o.runTarget(ctx, t))
	}
	return results
}

func (o *Orchestrator) runTarget(ctx context.Context, t TargetSpec) BuildResult {
	start := time.Now()
	res := BuildResult{Target: t}

	triple, err := o.ResolveTriple(t)
	if err != nil {
		res.Duration = time.Since(start)
		return fail(res, err)
	}
	res.Triple = triple

	if o.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Config.Timeout)
		defer cancel()
	}

	if err := o.EnsureToolchainTarget(ctx, t.Key, triple); err != nil {
		res.Duration = time.Since(start)
		return fail(res, err)
	}

	res = o.Build(ctx, t, triple)
	if !res.Success {
		res.Duration = time.Since(start)
		return res
	}

	dest, err := o.CollectArtifact(t, triple)
	res.Duration = time.Since(start)
	if err != nil {
		return fail(res, err)
	}
	res.ProducedPath = dest
	return res
}

// fail records err on res.
func fail(res BuildResult, err error) BuildResult {
	res.Success = false
	res.Err = err
	res.ErrorMessage = err.Error()
	return res
}

func (o *Orchestrator) redact(s string) string {
	if o.Redactor == nil || s == "" {
		return s
	}
	return o.Redactor.Redact(s)
}

func (o *Orchestrator) out() io.Writer {
	if o.Stdout == nil {
		return io.Discard
	}
	return o.Stdout
}

func (o *Orchestrator) errOut() io.Writer {
	if o.Stderr == nil {
		return io.Discard
	}
	return o.Stderr
}

// Describe returns the resolved plan row for a target without building it.
func (o *Orchestrator) Describe(t TargetSpec) PlannedTarget {
	p := PlannedTarget{Target: t}
	triple, err := o.ResolveTriple(t)
	if err != nil {
		p.Err = err
		return p
	}
	p.Triple = triple
	if src, err := o.Toolchain.ArtifactPath(triple, o.Config.Release); err == nil {
		p.Source = src
	} else {
		p.Err = err
	}
	if dest, err := o.DestinationPath(t, triple); err == nil {
		p.Destination = dest
	} else if p.Err == nil {
		p.Err = err
	}
	return p
}

// PlannedTarget is a dry-run view of one target.
type PlannedTarget struct {
	Target      TargetSpec
	Triple      string
	Source      string // toolchain output path
	Destination string
	Err         error
}

// String formats a plan row for verbose output.
func (p PlannedTarget) String() string {
	if p.Err != nil {
		return fmt.Sprintf("%s: %v", p.Target.Key, p.Err)
	}
	return fmt.Sprintf("%s (%s) %s → %s", p.Target.Key, p.Triple, p.Source, p.Destination)
}
