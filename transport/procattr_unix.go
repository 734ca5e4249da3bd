//go:build unix

package transport

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup puts the subprocess in its own process group so that a
// signal sent to this process (e.g. Ctrl-C in a terminal) does not also
// land on the language server, which should instead be torn down via
// Session.Shutdown/Exit or KillProcessGroup.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup sends sig to the whole process group of a subprocess
// started by Stdio, for use when the server does not exit promptly after
// Session.Exit (a hung or misbehaving server). Pid must be the subprocess's
// own pid (Stdio.Cmd().Process.Pid), since Setpgid above makes its pgid
// equal to its pid.
func KillProcessGroup(pid int, sig syscall.Signal) error {
	return unix.Kill(-pid, unix.Signal(sig))
}
