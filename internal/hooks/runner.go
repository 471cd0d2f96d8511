package hooks

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/palotasb/githooks/internal/log"
)

// Observer is notified as entries run. Calls happen on the goroutine
// calling Run, in execution order.
type Observer interface {
	EntryStarted(e Entry)
	EntryFinished(o Outcome)
}

// Runner executes entries sequentially.
type Runner struct {
	Executor Executor // nil means a ProcessExecutor
	Observer Observer // optional

	// Stream passes entry output through to Stdout and Stderr while it is
	// captured. Otherwise output is only captured.
	Stream bool
	Stdout io.Writer
	Stderr io.Writer

	// Environ returns the base environment for entries. Defaults to os.Environ.
	Environ func() []string
}

// Run executes entries in order and aggregates their outcomes.
//
// Disabled entries are skipped without an outcome. A failing fatal entry
// stops the run; a failing advisory entry is logged and the run continues.
// When ctx is cancelled the running entry is killed, recorded as
// interrupted, and no further entries start.
func (r *Runner) Run(ctx context.Context, inv Invocation, entries []Entry) RunResult {
	start := time.Now()
	result := RunResult{Hook: inv.Hook, Started: start, Planned: len(entries)}

	if len(entries) == 0 {
		result.Verdict = VerdictSkipped
		return result
	}

	l := log.FromContext(ctx)
	base := r.environ()

	for _, e := range entries {
		if !e.Policy.Enabled {
			l.Debug("skip disabled entry", "entry", e.Key())
			result.Disabled = append(result.Disabled, e)
			continue
		}
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		o := r.runEntry(ctx, inv, e, base)
		result.Outcomes = append(result.Outcomes, o)

		if o.Status == StatusInterrupted {
			result.Interrupted = true
			break
		}
		if o.OK() {
			continue
		}
		if e.Policy.Fatal {
			l.Debug("fatal entry failed, stopping", "entry", e.Key(), "status", o.Status)
			break
		}
		l.Warnf("advisory hook %s failed: %s", e.Key(), o.Describe())
	}

	result.Duration = time.Since(start)
	result.Verdict = verdict(result.Outcomes, result.Interrupted)
	return result
}

func (r *Runner) runEntry(ctx context.Context, inv Invocation, e Entry, base []string) Outcome {
	entryCtx := ctx
	if e.Policy.Timeout > 0 {
		var cancel context.CancelFunc
		entryCtx, cancel = context.WithTimeout(ctx, e.Policy.Timeout)
		defer cancel()
	}

	stdout := newCappedBuffer(MaxCapture)
	stderr := newCappedBuffer(MaxCapture)
	var outW, errW io.Writer = stdout, stderr
	if r.Stream {
		outW = io.MultiWriter(writerOr(r.Stdout, os.Stdout), stdout)
		errW = io.MultiWriter(writerOr(r.Stderr, os.Stderr), stderr)
	}

	if r.Observer != nil {
		r.Observer.EntryStarted(e)
	}

	start := time.Now()
	code, err := r.executor().Execute(entryCtx, Command{
		Path:   e.Path,
		Args:   inv.Args,
		Dir:    inv.RepoRoot,
		Env:    inv.childEnv(base, e),
		Stdin:  inv.Stdin,
		Stdout: outW,
		Stderr: errW,
	})

	o := Outcome{
		Entry:     e,
		ExitCode:  code,
		Duration:  time.Since(start),
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	var startErr *StartError
	switch {
	case err == nil && code == 0:
		o.Status = StatusPassed
	case ctx.Err() != nil:
		o.Status = StatusInterrupted
	case errors.Is(entryCtx.Err(), context.DeadlineExceeded):
		o.Status = StatusTimedOut
	case errors.As(err, &startErr):
		o.Status = StatusFailedToStart
		o.Err = err
	default:
		o.Status = StatusFailed
		o.Err = err
	}

	if r.Observer != nil {
		r.Observer.EntryFinished(o)
	}
	return o
}

func (r *Runner) executor() Executor {
	if r.Executor != nil {
		return r.Executor
	}
	return &ProcessExecutor{}
}

func (r *Runner) environ() []string {
	if r.Environ != nil {
		return r.Environ()
	}
	return os.Environ()
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
