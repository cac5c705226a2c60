package build

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestLoadCrateDefaults(t *testing.T) {
	t.Setenv("CARGO_TARGET_DIR", "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), `
[package]
name = "git-details"
version = "0.1.0"

[lib]
crate-type = ["cdylib", "rlib"]
`)

	crate, err := LoadCrate(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if crate.LibName != "git_details" {
		t.Errorf("lib name = %q, want git_details", crate.LibName)
	}
	if !crate.IsSharedLibrary() {
		t.Error("cdylib crate should be a shared library")
	}
	if crate.TargetDir != filepath.Join(dir, "target") {
		t.Errorf("target dir = %q", crate.TargetDir)
	}
}

func TestLoadCrateLibNameAndConfigTargetDir(t *testing.T) {
	t.Setenv("CARGO_TARGET_DIR", "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), `
[package]
name = "native"

[lib]
name = "git_details"
`)
	writeFile(t, filepath.Join(dir, ".cargo", "config.toml"), `
[build]
target-dir = "out/cargo"
`)

	crate, err := LoadCrate(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if crate.LibName != "git_details" {
		t.Errorf("lib name = %q", crate.LibName)
	}
	if crate.IsSharedLibrary() {
		t.Error("crate without crate-type is not a shared library")
	}
	if want := filepath.Join(dir, "out", "cargo"); crate.TargetDir != want {
		t.Errorf("target dir = %q, want %q", crate.TargetDir, want)
	}
}

func TestLoadCrateEnvTargetDir(t *testing.T) {
	abs := t.TempDir()
	t.Setenv("CARGO_TARGET_DIR", abs)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"x\"\n")

	crate, err := LoadCrate(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if crate.TargetDir != abs {
		t.Errorf("target dir = %q, want %q", crate.TargetDir, abs)
	}
}

func TestLoadCrateErrors(t *testing.T) {
	t.Setenv("CARGO_TARGET_DIR", "")
	if _, err := LoadCrate(t.TempDir()); err == nil {
		t.Error("expected error for missing Cargo.toml")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[workspace]\nmembers = [\"a\"]\n")
	if _, err := LoadCrate(dir); err == nil {
		t.Error("expected error for workspace manifest")
	}
}

func TestCargoArtifactPathAndArgs(t *testing.T) {
	t.Setenv("CARGO_TARGET_DIR", "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"git_details\"\n")

	c := NewCargo("cargo", "rustup", dir, false)
	got, err := c.ArtifactPath("x86_64-pc-windows-gnu", true)
	if err != nil {
		t.Fatalf("artifact path: %v", err)
	}
	want := filepath.Join(dir, "target", "x86_64-pc-windows-gnu", "release", "git_details.dll")
	if got != want {
		t.Errorf("artifact = %q, want %q", got, want)
	}

	args := c.buildArgs(Invocation{Triple: "aarch64-apple-darwin", Release: true})
	if len(args) != 4 || args[0] != "build" || args[1] != "--release" || args[3] != "aarch64-apple-darwin" {
		t.Errorf("args = %v", args)
	}
	args = c.buildArgs(Invocation{Triple: "aarch64-apple-darwin"})
	for _, a := range args {
		if a == "--release" {
			t.Errorf("debug build passed --release: %v", args)
		}
	}
}
