//go:build unix

package runner

import (
	"os/exec"
	"syscall"
)

// configureKill puts the child in its own process group and kills the whole
// group on cancellation, so interpreters cannot leave workers behind.
func configureKill(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}

// reapGroup kills whatever is left in the child's process group after it
// exited, such as a backgrounded grandchild.
func reapGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
