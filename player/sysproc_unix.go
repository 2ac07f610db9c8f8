//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// the player gets its own process group so signals reach helpers it spawns (yt-dlp)
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}

func suspendProcess(cmd *exec.Cmd) error {
	return signalGroup(cmd, syscall.SIGSTOP)
}

func resumeProcess(cmd *exec.Cmd) error {
	return signalGroup(cmd, syscall.SIGCONT)
}

func signalGroup(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, sig)
}
