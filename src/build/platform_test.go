package build

import (
	"errors"
	"testing"
)

func TestHostTriple(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "386", "i686-unknown-linux-gnu"},
		{"linux", "amd64", "x86_64-unknown-linux-gnu"},
		{"windows", "amd64", "x86_64-pc-windows-msvc"},
		{"darwin", "amd64", "x86_64-apple-darwin"},
		{"darwin", "arm64", "aarch64-apple-darwin"},
	}
	for _, tt := range tests {
		got, err := HostTriple(tt.goos, tt.goarch)
		if err != nil {
			t.Errorf("%s/%s: %v", tt.goos, tt.goarch, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s/%s = %q, want %q", tt.goos, tt.goarch, got, tt.want)
		}
	}

	if _, err := HostTriple("plan9", "mips"); !errors.Is(err, ErrUnsupportedHost) {
		t.Errorf("plan9/mips err = %v, want ErrUnsupportedHost", err)
	}
}

func TestPlatformNaming(t *testing.T) {
	tests := []struct {
		triple string
		key    string
		lib    string
	}{
		{"i686-unknown-linux-gnu", "linux-i686", "libgit_details.so"},
		{"x86_64-unknown-linux-gnu", "linux-x86_64", "libgit_details.so"},
		{"x86_64-pc-windows-gnu", "win-x86_64", "git_details.dll"},
		{"x86_64-apple-darwin", "macos-x86_64", "libgit_details.dylib"},
		{"aarch64-apple-darwin", "macos-aarch64", "libgit_details.dylib"},
	}
	for _, tt := range tests {
		p, err := ParseTriple(tt.triple)
		if err != nil {
			t.Fatalf("%s: %v", tt.triple, err)
		}
		if got := p.Key(); got != tt.key {
			t.Errorf("%s key = %q, want %q", tt.triple, got, tt.key)
		}
		if got := p.SharedLibraryName("git_details"); got != tt.lib {
			t.Errorf("%s lib = %q, want %q", tt.triple, got, tt.lib)
		}
	}

	if _, err := ParseTriple("x86_64"); err == nil {
		t.Error("expected error for single-part triple")
	}
}

func TestKeyWarnings(t *testing.T) {
	cfg := Config{Targets: []TargetSpec{
		{Key: "linux-x86_64", Triple: "x86_64-unknown-linux-gnu"},
		{Key: "host"},
		{Key: "linux-aarch64", Triple: "aarch64-apple-darwin"},
		{Key: "odd", Triple: "x86_64"},
	}}
	got := cfg.KeyWarnings()
	if len(got) != 2 {
		t.Fatalf("warnings = %v, want 2", got)
	}
	if got[0] != "target linux-aarch64: triple aarch64-apple-darwin is platform macos-aarch64" {
		t.Errorf("warning = %q", got[0])
	}
}
