//go:build !windows

package hooks

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcess starts the child in a new process group and makes
// cancellation kill the whole group, including anything the script spawned.
// Interactive children keep the caller's group and the default kill.
func configureProcess(cmd *exec.Cmd, interactive bool) {
	if interactive {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
