package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/palotasb/githooks/internal/log"
)

// DefaultWaitDelay bounds how long Execute waits for output pipes to close
// after the entry exits or is killed.
const DefaultWaitDelay = 2 * time.Second

// Command describes one entry process.
type Command struct {
	Path   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  []byte
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs a Command to completion.
//
// Execute returns the exit code when the process ran. A process that could
// not be started yields a *StartError. When ctx ends first the process is
// killed and ctx.Err() is returned.
type Executor interface {
	Execute(ctx context.Context, c Command) (int, error)
}

// StartError reports an entry that could not be started at all, such as a
// missing interpreter or a permission revoked after discovery.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// ProcessExecutor runs commands as child processes. On Unix each child gets
// its own process group so a timeout or interrupt kills the whole tree.
//
// With Interactive set the child stays in the caller's process group
// instead, so a script can prompt through /dev/tty without being stopped
// by SIGTTIN. A timeout then kills only the entry process; the terminal
// still delivers Ctrl-C to everything in the group.
type ProcessExecutor struct {
	WaitDelay   time.Duration // 0 means DefaultWaitDelay
	Interactive bool
}

// Execute implements Executor.
func (p *ProcessExecutor) Execute(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	if len(c.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.WaitDelay = p.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}
	configureProcess(cmd, p.Interactive)

	l := log.FromContext(ctx)
	done := l.Command(c.Dir, c.Path, c.Args...)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		done(time.Since(start))
		return -1, &StartError{Path: c.Path, Err: err}
	}
	err := cmd.Wait()
	done(time.Since(start))

	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return exitCode(cmd), ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		// The entry exited but left a descendant holding its output open.
		return exitCode(cmd), nil
	}
	return exitCode(cmd), err
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
