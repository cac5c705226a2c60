//go:build !unix && !windows

package build

import "os/exec"

// killProcessGroup is a no-op; cancellation kills only the direct child.
func killProcessGroup(cmd *exec.Cmd) {}
