// Package report renders hook runs for the terminal and maps their verdict
// to the exit status git expects.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/ui/progress"
	"github.com/palotasb/githooks/internal/ui/styles"
)

// Options controls what the Reporter prints.
type Options struct {
	// Verbose prints captured output of passing entries too.
	Verbose bool
	// Stream means entry output was already shown live, so it is not
	// repeated after each entry.
	Stream bool
	// Spinner animates while a buffered entry runs. Only useful on a terminal.
	Spinner bool
	// SpinnerOut is the terminal the spinner draws on. Defaults to the
	// Reporter's writer.
	SpinnerOut io.Writer
	// Quiet prints failures only.
	Quiet bool
}

// Reporter prints one status line per entry as the run progresses and a
// summary at the end. It implements hooks.Observer.
type Reporter struct {
	w    io.Writer
	opts Options
	spin *progress.Spinner
}

// New creates a Reporter writing to w, usually stderr.
func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{w: w, opts: opts}
}

// EntryStarted implements hooks.Observer.
func (r *Reporter) EntryStarted(e hooks.Entry) {
	switch {
	case r.opts.Stream:
		if !r.opts.Quiet {
			fmt.Fprintf(r.w, "%s %s\n", styles.PrimaryStyle.Render("›"), styles.Bold.Render(e.Key()))
		}
	case r.opts.Spinner:
		out := r.opts.SpinnerOut
		if out == nil {
			out = r.w
		}
		r.spin = progress.NewSpinner(out, e.Key())
		r.spin.Start()
	}
}

// EntryFinished implements hooks.Observer.
func (r *Reporter) EntryFinished(o hooks.Outcome) {
	if r.spin != nil {
		r.spin.Stop()
		r.spin = nil
	}

	if r.opts.Quiet && o.OK() {
		return
	}
	fmt.Fprintln(r.w, StatusLine(o))

	if r.opts.Stream || (o.OK() && !r.opts.Verbose) {
		return
	}
	if out := CapturedOutput(o); out != "" {
		fmt.Fprint(r.w, styles.OutputStyle.Render(out)+"\n")
	}
}

// Summary prints the verdict line. A skipped run with nothing configured
// prints nothing so hooks without scripts stay silent.
func (r *Reporter) Summary(res hooks.RunResult) {
	if res.Verdict == hooks.VerdictSkipped && len(res.Disabled) == 0 {
		return
	}
	if r.opts.Quiet && res.Verdict != hooks.VerdictFailed {
		return
	}
	fmt.Fprintln(r.w, SummaryLine(res))
}

// ExitCode returns the exit status for a run: 0 lets git proceed.
func ExitCode(res hooks.RunResult) int {
	return res.ExitCode()
}

// StatusLine renders one outcome, e.g. "✗ pre-commit/02-lint 1.2s: exit status 1".
func StatusLine(o hooks.Outcome) string {
	fatal := o.Entry.Policy.Fatal
	style := styles.StatusStyle(o.Status, fatal)

	line := fmt.Sprintf("%s %s %s",
		style.Render(styles.StatusSymbol(o.Status, fatal)),
		o.Entry.Key(),
		styles.MutedStyle.Render(FormatDuration(o.Duration)),
	)
	if !o.OK() {
		reason := o.Describe()
		if !fatal && o.Status != hooks.StatusInterrupted {
			reason += " (advisory)"
		}
		line += ": " + style.Render(reason)
	}
	return line
}

// CapturedOutput returns the captured stdout and stderr of an outcome,
// trimmed, with a note when it was truncated.
func CapturedOutput(o hooks.Outcome) string {
	var parts []string
	if s := strings.TrimRight(string(o.Stdout), "\n"); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimRight(string(o.Stderr), "\n"); s != "" {
		parts = append(parts, s)
	}
	if o.Truncated {
		parts = append(parts, fmt.Sprintf("[output truncated at %d bytes]", hooks.MaxCapture))
	}
	return strings.Join(parts, "\n")
}

// SummaryLine renders the verdict with counts, e.g.
// "pre-commit failed: 1 passed, 1 failed, 2 not run (3.4s)".
func SummaryLine(res hooks.RunResult) string {
	var passed, failed, advisory int
	for _, o := range res.Outcomes {
		switch {
		case o.OK():
			passed++
		case o.Entry.Policy.Fatal || o.Status == hooks.StatusInterrupted:
			failed++
		default:
			advisory++
		}
	}

	var counts []string
	add := func(n int, label string) {
		if n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(passed, "passed")
	add(failed, "failed")
	add(advisory, "advisory failed")
	add(len(res.Disabled), "disabled")
	add(res.NotRun(), "not run")

	verdict := string(res.Verdict)
	if res.Interrupted {
		verdict = "interrupted"
	}

	line := styles.VerdictStyle(res.Verdict).Render(res.Hook + " " + verdict)
	if len(counts) > 0 {
		line += ": " + strings.Join(counts, ", ")
	}
	return line + " " + styles.MutedStyle.Render("("+FormatDuration(res.Duration)+")")
}

// FormatDuration rounds d for display: milliseconds below a second,
// tenths of a second above.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// RenderPlan lists what a run would do without running it.
func RenderPlan(hook string, entries []hooks.Entry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("%s: no hooks to run\n", hook)
	}
	var b strings.Builder
	for _, e := range entries {
		var attrs []string
		switch {
		case !e.Policy.Enabled:
			attrs = append(attrs, "disabled")
		case e.Policy.Fatal:
			attrs = append(attrs, "fatal")
		default:
			attrs = append(attrs, "advisory")
		}
		if e.Policy.Enabled {
			attrs = append(attrs, "timeout "+TimeoutString(e.Policy.Timeout))
		}
		fmt.Fprintf(&b, "%s (%s)\n", e.Key(), strings.Join(attrs, ", "))
	}
	return b.String()
}

// TimeoutString formats a policy timeout; zero means no limit.
func TimeoutString(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}
