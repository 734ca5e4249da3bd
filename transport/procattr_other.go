//go:build !unix

package transport

import "os/exec"

// setProcessGroup is a no-op on non-Unix platforms; Windows has no
// process-group signal semantics to replicate here.
func setProcessGroup(cmd *exec.Cmd) {}
