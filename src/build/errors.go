package build

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedHost  = errors.New("unsupported host")
	ErrToolchainMissing = errors.New("toolchain missing")
	ErrCompile          = errors.New("compile failed")
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrTimeout          = errors.New("build timed out")
	ErrCollect          = errors.New("collecting artifact failed")
	ErrCanceled         = errors.New("run canceled")
)

// TargetError is a per-target failure. Kind is one of the Err* sentinels.
type TargetError struct {
	Kind   error
	Target string // target key, empty for host-level failures
	Msg    string

	// Diagnostics holds the raw toolchain error stream, if any.
	Diagnostics string
}

func (e *TargetError) Error() string {
	if e == nil {
		return ""
	}
	prefix := e.Kind.Error()
	if e.Target != "" {
		prefix = fmt.Sprintf("%s: %s", prefix, e.Target)
	}
	if e.Msg == "" {
		return prefix
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *TargetError) Unwrap() error { return e.Kind }

func targetErrorf(kind error, target, format string, args ...any) *TargetError {
	return &TargetError{Kind: kind, Target: target, Msg: fmt.Sprintf(format, args...)}
}
