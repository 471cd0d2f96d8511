package hooks

import (
	"fmt"
	"time"
)

// Status is the outcome of one entry.
type Status string

const (
	StatusPassed        Status = "passed"
	StatusFailed        Status = "failed"          // non-zero exit
	StatusTimedOut      Status = "timed-out"       // killed after its timeout
	StatusFailedToStart Status = "failed-to-start" // could not be executed
	StatusInterrupted   Status = "interrupted"     // killed because the run was cancelled
)

// Verdict is the aggregate result of a run.
type Verdict string

const (
	VerdictPassed  Verdict = "passed"
	VerdictFailed  Verdict = "failed"
	VerdictSkipped Verdict = "skipped"
)

// Outcome records one executed entry.
type Outcome struct {
	Entry     Entry
	Status    Status
	ExitCode  int // -1 when the process never exited on its own
	Duration  time.Duration
	Stdout    []byte
	Stderr    []byte
	Truncated bool  // captured output hit MaxCapture
	Err       error // start or wait error, if any
}

// OK reports whether the entry succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusPassed
}

// Describe returns a short human-readable reason for the status.
func (o Outcome) Describe() string {
	switch o.Status {
	case StatusPassed:
		return "ok"
	case StatusFailed:
		if o.Err != nil {
			return o.Err.Error()
		}
		return fmt.Sprintf("exit status %d", o.ExitCode)
	case StatusTimedOut:
		return fmt.Sprintf("timed out after %s", o.Entry.Policy.Timeout)
	case StatusFailedToStart:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "failed to start"
	case StatusInterrupted:
		return "interrupted"
	default:
		return string(o.Status)
	}
}

// RunResult is the outcome of one hook invocation. Outcomes are in execution
// order and only cover entries that were actually started.
type RunResult struct {
	Hook        string
	Verdict     Verdict
	Outcomes    []Outcome
	Disabled    []Entry // entries skipped by policy
	Planned     int     // entries handed to the run, including disabled ones
	Interrupted bool
	Started     time.Time
	Duration    time.Duration
}

// ExitCode maps the verdict to the status git expects from a hook.
func (r RunResult) ExitCode() int {
	if r.Verdict == VerdictFailed {
		return 1
	}
	return 0
}

// Failures returns the outcomes that did not succeed.
func (r RunResult) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// NotRun returns how many enabled entries never started because the run
// stopped early.
func (r RunResult) NotRun() int {
	return r.Planned - len(r.Outcomes) - len(r.Disabled)
}

// verdict computes the aggregate. An interrupted run fails regardless of
// policy; otherwise only fatal entries decide.
func verdict(outcomes []Outcome, interrupted bool) Verdict {
	if interrupted {
		return VerdictFailed
	}
	if len(outcomes) == 0 {
		return VerdictSkipped
	}
	for _, o := range outcomes {
		if !o.OK() && o.Entry.Policy.Fatal {
			return VerdictFailed
		}
	}
	return VerdictPassed
}
