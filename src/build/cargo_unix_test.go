//go:build unix

package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeCargo is a shell stand-in for cargo. It fails the windows triple
// with a rustc diagnostic on stderr, hangs with a background child for the
// darwin triples, and writes the .so artifact for everything else.
const fakeCargo = `#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "cargo 1.80.0 (376290515 2024-07-16)"
	exit 0
fi
triple=""
profile=debug
while [ $# -gt 0 ]; do
	case "$1" in
	--target) triple="$2"; shift ;;
	--release) profile=release ;;
	esac
	shift
done
case "$triple" in
*-windows-*)
	echo "error[E0463]: can't find crate for ` + "\\`std\\`" + `" >&2
	exit 101
	;;
*-apple-darwin)
	(sleep 1; echo late > "$CROSSFORGE_LATE_MARK") &
	wait
	exit 0
	;;
esac
mkdir -p "target/$triple/$profile"
printf 'lib for %s' "$triple" > "target/$triple/$profile/libgit_details.so"
`

const fakeRustup = `#!/bin/sh
if [ "$3" = "x86_64-pc-windows-gnu" ]; then
	echo "error: component 'rust-std' for target '$3' is unavailable" >&2
	exit 1
fi
`

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

// scriptCargo returns a Cargo backed by the shell stand-ins and its crate dir.
func scriptCargo(t *testing.T) (*Cargo, string) {
	t.Helper()
	t.Setenv("CARGO_TARGET_DIR", "")
	t.Setenv("CROSSFORGE_LATE_MARK", filepath.Join(t.TempDir(), "late-write"))

	bin := t.TempDir()
	writeScript(t, filepath.Join(bin, "cargo"), fakeCargo)
	writeScript(t, filepath.Join(bin, "rustup"), fakeRustup)

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "Cargo.toml"), "[package]\nname = \"git_details\"\n\n[lib]\ncrate-type = [\"cdylib\"]\n")

	c := NewCargo(filepath.Join(bin, "cargo"), filepath.Join(bin, "rustup"), src, false)
	c.Stderr = io.Discard
	return c, src
}

func TestCargoBuildExitStatus(t *testing.T) {
	c, src := scriptCargo(t)
	ctx := context.Background()

	if err := c.Build(ctx, Invocation{Triple: "x86_64-unknown-linux-gnu", Release: true, Dir: src, Stdout: io.Discard, Stderr: io.Discard}); err != nil {
		t.Fatalf("exit 0 build: %v", err)
	}
	path, err := c.ArtifactPath("x86_64-unknown-linux-gnu", true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact missing: %v", err)
	}

	var stderr bytes.Buffer
	err = c.Build(ctx, Invocation{Triple: "x86_64-pc-windows-gnu", Release: true, Dir: src, Stdout: io.Discard, Stderr: &stderr})
	if err == nil {
		t.Fatal("exit 101 build reported success")
	}
	if !strings.Contains(err.Error(), "exit status 101") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(stderr.String(), "error[E0463]") {
		t.Errorf("stderr not captured: %q", stderr.String())
	}
}

func TestCargoInstallTarget(t *testing.T) {
	c, _ := scriptCargo(t)
	ctx := context.Background()

	if err := c.InstallTarget(ctx, "x86_64-unknown-linux-gnu"); err != nil {
		t.Errorf("install: %v", err)
	}
	err := c.InstallTarget(ctx, "x86_64-pc-windows-gnu")
	if err == nil || !strings.Contains(err.Error(), "rust-std") {
		t.Errorf("install err = %v, want installer output", err)
	}
}

func TestCargoVersion(t *testing.T) {
	c, _ := scriptCargo(t)
	out, err := c.Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckVersion(out, ">= 1.70.0"); err != nil {
		t.Errorf("version gate: %v", err)
	}
}

func TestOrchestratorWithCargoScript(t *testing.T) {
	c, src := scriptCargo(t)
	cfg := Config{
		Release:    true,
		Command:    c.Command,
		SourceDir:  src,
		OutputRoot: t.TempDir(),
		Targets: []TargetSpec{
			{Key: "linux-x86_64", Triple: "x86_64-unknown-linux-gnu", OutputName: "libgit_details.so"},
			{Key: "win-x86_64", Triple: "x86_64-pc-windows-gnu", OutputName: "git_details.dll"},
		},
	}
	results := newTestOrchestrator(cfg, c).Run(context.Background())

	if !results[0].Success {
		t.Errorf("linux failed: %s", results[0].ErrorMessage)
	}
	win := results[1]
	if !errors.Is(win.Err, ErrCompile) {
		t.Fatalf("windows err = %v, want ErrCompile", win.Err)
	}
	if !strings.Contains(win.ErrorMessage, "error[E0463]: can't find crate for `std`") {
		t.Errorf("error message = %q", win.ErrorMessage)
	}
}

func TestTimeoutKillsToolchainProcessGroup(t *testing.T) {
	c, src := scriptCargo(t)
	mark := os.Getenv("CROSSFORGE_LATE_MARK")
	cfg := Config{
		Release:    true,
		Command:    c.Command,
		SourceDir:  src,
		OutputRoot: t.TempDir(),
		Timeout:    100 * time.Millisecond,
		Targets: []TargetSpec{
			{Key: "macos-x86_64", Triple: "x86_64-apple-darwin"},
			{Key: "macos-aarch64", Triple: "aarch64-apple-darwin"},
		},
	}

	start := time.Now()
	results := newTestOrchestrator(cfg, c).Run(context.Background())
	elapsed := time.Since(start)

	for _, r := range results {
		if !errors.Is(r.Err, ErrTimeout) {
			t.Errorf("%s: err = %v, want ErrTimeout", r.Target.Key, r.Err)
		}
	}
	// Two killed targets must not wait on orphaned children holding stderr.
	if elapsed > 2*time.Second {
		t.Errorf("run took %s, want well under the pipe wait delay", elapsed)
	}

	time.Sleep(1500 * time.Millisecond)
	if _, err := os.Stat(mark); err == nil {
		t.Error("background child outlived the killed build")
	}
}
