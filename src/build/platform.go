package build

import (
	"fmt"
	"runtime"
	"strings"
)

// hostTriples maps GOOS/GOARCH to the toolchain's default host triple.
var hostTriples = map[string]string{
	"linux/386":     "i686-unknown-linux-gnu",
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"linux/arm":     "armv7-unknown-linux-gnueabihf",
	"windows/386":   "i686-pc-windows-msvc",
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
	"freebsd/amd64": "x86_64-unknown-freebsd",
}

// HostTriple returns the target triple for a GOOS/GOARCH pair.
func HostTriple(goos, goarch string) (string, error) {
	triple, ok := hostTriples[goos+"/"+goarch]
	if !ok {
		return "", &TargetError{
			Kind: ErrUnsupportedHost,
			Msg:  fmt.Sprintf("no default target for %s/%s", goos, goarch),
		}
	}
	return triple, nil
}

// CurrentHostTriple returns the target triple of the running host.
func CurrentHostTriple() (string, error) {
	return HostTriple(runtime.GOOS, runtime.GOARCH)
}

// Platform is a parsed target triple.
type Platform struct {
	Arch   string // "x86_64", "i686", "aarch64"
	Vendor string // "unknown", "pc", "apple"
	OS     string // "linux", "windows", "darwin", "freebsd"
	Env    string // "gnu", "msvc", "musl", ""
}

// ParseTriple splits an <arch>-<vendor>-<os>[-<env>] triple.
// Two-part triples ("wasm32-wasi") leave Vendor empty.
func ParseTriple(triple string) (Platform, error) {
	parts := strings.Split(triple, "-")
	switch len(parts) {
	case 2:
		return Platform{Arch: parts[0], OS: parts[1]}, nil
	case 3:
		return Platform{Arch: parts[0], Vendor: parts[1], OS: parts[2]}, nil
	case 4:
		return Platform{Arch: parts[0], Vendor: parts[1], OS: parts[2], Env: parts[3]}, nil
	}
	return Platform{}, fmt.Errorf("build: malformed target triple %q", triple)
}

// Key returns the logical platform key: "linux-x86_64", "win-x86_64",
// "macos-aarch64".
func (p Platform) Key() string {
	os := p.OS
	switch os {
	case "windows":
		os = "win"
	case "darwin":
		os = "macos"
	}
	return os + "-" + p.Arch
}

// SharedLibraryName returns the file name a toolchain produces for a
// shared library called lib on this platform.
func (p Platform) SharedLibraryName(lib string) string {
	switch p.OS {
	case "windows":
		return lib + ".dll"
	case "darwin", "ios":
		return "lib" + lib + ".dylib"
	default:
		return "lib" + lib + ".so"
	}
}
