package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// waitDelay bounds how long a killed toolchain may hold its output pipes.
const waitDelay = 10 * time.Second

// Cargo wraps cargo and rustup commands.
type Cargo struct {
	Command   string // "cargo", or a drop-in such as "cross"
	Installer string // "rustup"
	SourceDir string
	Verbose   bool
	Stderr    io.Writer // receives "exec:" lines in verbose mode

	crate *Crate
}

// NewCargo creates a Cargo toolchain for a source tree.
func NewCargo(command, installer, sourceDir string, verbose bool) *Cargo {
	return &Cargo{
		Command:   command,
		Installer: installer,
		SourceDir: sourceDir,
		Verbose:   verbose,
		Stderr:    os.Stderr,
	}
}

func (c *Cargo) Name() string { return c.Command }

// Version runs "<command> --version".
func (c *Cargo) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.Command, "--version")
	cmd.Dir = c.SourceDir
	killProcessGroup(cmd)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", c.Command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// InstallTarget runs "<installer> target add <triple>".
func (c *Cargo) InstallTarget(ctx context.Context, triple string) error {
	args := []string{"target", "add", triple}
	c.logExec(c.Installer, args)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Installer, args...)
	cmd.Dir = c.SourceDir
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("%s target add %s: %w", c.Installer, triple, err)
		}
		return fmt.Errorf("%s target add %s: %w: %s", c.Installer, triple, err, msg)
	}
	return nil
}

// Build executes a single target build via "cargo build".
func (c *Cargo) Build(ctx context.Context, inv Invocation) error {
	args := c.buildArgs(inv)
	c.logExec(c.Command, args)

	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s build failed: %w", c.Command, err)
	}
	return nil
}

// buildArgs constructs the cargo build argument list.
func (c *Cargo) buildArgs(inv Invocation) []string {
	args := []string{"build"}
	if inv.Release {
		args = append(args, "--release")
	}
	if inv.Triple != "" {
		args = append(args, "--target", inv.Triple)
	}
	return args
}

// ArtifactPath returns <target-dir>/<triple>/<profile>/<library file>.
func (c *Cargo) ArtifactPath(triple string, release bool) (string, error) {
	crate, err := c.loadCrate()
	if err != nil {
		return "", err
	}
	p, err := ParseTriple(triple)
	if err != nil {
		return "", err
	}
	profile := "debug"
	if release {
		profile = "release"
	}
	return filepath.Join(crate.TargetDir, triple, profile, p.SharedLibraryName(crate.LibName)), nil
}

// Crate returns the parsed manifest of the source tree.
func (c *Cargo) Crate() (*Crate, error) {
	return c.loadCrate()
}

func (c *Cargo) loadCrate() (*Crate, error) {
	if c.crate != nil {
		return c.crate, nil
	}
	crate, err := LoadCrate(c.SourceDir)
	if err != nil {
		return nil, err
	}
	c.crate = crate
	return crate, nil
}

func (c *Cargo) logExec(name string, args []string) {
	if c.Verbose && c.Stderr != nil {
		fmt.Fprintf(c.Stderr, "exec: %s %s\n", name, strings.Join(args, " "))
	}
}
