package build

import (
	"context"
	"io"
)

// Toolchain is the external native compiler used to build every target.
type Toolchain interface {
	// Name returns the toolchain command name for display.
	Name() string

	// Version returns the raw output of the toolchain's version query.
	Version(ctx context.Context) (string, error)

	// InstallTarget installs cross-compilation support for triple.
	InstallTarget(ctx context.Context, triple string) error

	// Build compiles the source tree for one triple and blocks until the
	// child process exits. A non-nil error means a non-zero exit or a
	// failure to start.
	Build(ctx context.Context, inv Invocation) error

	// ArtifactPath returns where Build leaves its output for a triple.
	ArtifactPath(triple string, release bool) (string, error)
}

// Invocation is a single toolchain build call.
type Invocation struct {
	Triple  string
	Release bool
	Dir     string // native source tree, read-only to crossforge
	Stdout  io.Writer
	Stderr  io.Writer
}
