//go:build !windows

package process

import (
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func TestKillProcessGroup_KillsChildGroup(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("sleep", "30")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if err := KillProcessGroup(cmd.Process.Pid); err != nil {
		t.Fatalf("KillProcessGroup() unexpected error: %v", err)
	}

	select {
	case err := <-done:
		if err == nil {
			t.Error("process exited cleanly, want killed")
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process still running after KillProcessGroup")
	}
}
