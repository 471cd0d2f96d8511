//go:build !windows

package hooks

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/palotasb/githooks/internal/config"
)

// Tests in this file are not parallel: writing a script while another test
// forks can make exec fail with ETXTBSY.

// countingExecutor counts spawns while running real processes.
type countingExecutor struct {
	inner Executor
	n     atomic.Int32
}

func (c *countingExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	c.n.Add(1)
	return c.inner.Execute(ctx, cmd)
}

func runReal(t *testing.T, repo string, hook string, cfg *config.Config, inv Invocation) (RunResult, int) {
	t.Helper()
	root := filepath.Join(repo, config.DefaultHooksDir)
	entries, err := Plan(root, hook, cfg)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	inv.Hook = hook
	inv.RepoRoot = repo
	inv.HooksRoot = root

	counter := &countingExecutor{inner: &ProcessExecutor{}}
	r := &Runner{Executor: counter}
	result := r.Run(context.Background(), inv, entries)
	return result, int(counter.n.Load())
}

func TestProcess_FormatThenFailingLint(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "pre-commit", "01-format", "#!/bin/sh\nexit 0\n", 0o755)
	writeScript(t, root, "pre-commit", "02-lint", "#!/bin/sh\necho 'lint: bad.go:3 unused variable' >&2\nexit 1\n", 0o755)

	cfg := config.Default()
	result, spawned := runReal(t, repo, "pre-commit", &cfg, Invocation{})

	if spawned != 2 || len(result.Outcomes) != 2 {
		t.Fatalf("spawned = %d, outcomes = %d; want 2, 2", spawned, len(result.Outcomes))
	}
	if result.Verdict != VerdictFailed || result.ExitCode() == 0 {
		t.Errorf("Verdict = %q, ExitCode() = %d", result.Verdict, result.ExitCode())
	}
	if !strings.Contains(string(result.Outcomes[1].Stderr), "unused variable") {
		t.Errorf("lint stderr not captured: %q", result.Outcomes[1].Stderr)
	}
}

func TestProcess_AdvisoryWarnThenTest(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "pre-commit", "01-warn", "#!/bin/sh\nexit 1\n", 0o755)
	writeScript(t, root, "pre-commit", "02-test", "#!/bin/sh\nexit 0\n", 0o755)

	cfg := config.Default()
	cfg.Entries["pre-commit/01-warn"] = config.EntryConfig{Fatal: boolPtr(false)}
	result, spawned := runReal(t, repo, "pre-commit", &cfg, Invocation{})

	if spawned != 2 {
		t.Errorf("spawned = %d, want 2", spawned)
	}
	if got := outcomeStatuses(result); !slices.Equal(got, []Status{StatusFailed, StatusPassed}) {
		t.Errorf("statuses = %v", got)
	}
	if result.Verdict != VerdictPassed || result.ExitCode() != 0 {
		t.Errorf("Verdict = %q, ExitCode() = %d", result.Verdict, result.ExitCode())
	}
}

func TestProcess_MissingHookDirectory(t *testing.T) {
	repo := t.TempDir()
	writeScript(t, filepath.Join(repo, config.DefaultHooksDir), "pre-commit", "01", "#!/bin/sh\n", 0o755)

	result, spawned := runReal(t, repo, "commit-msg", nil, Invocation{Args: []string{".git/COMMIT_EDITMSG"}})

	if spawned != 0 {
		t.Errorf("spawned = %d, want 0", spawned)
	}
	if result.Verdict != VerdictSkipped || result.ExitCode() != 0 {
		t.Errorf("Verdict = %q, ExitCode() = %d", result.Verdict, result.ExitCode())
	}
}

func TestProcess_ArgsAndStdinRoundTrip(t *testing.T) {
	repo := t.TempDir()
	outDir := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	script := `#!/bin/sh
for a in "$@"; do printf '%s\n' "$a"; done > "$OUT_DIR/args-$GITHOOKS_ENTRY"
cat > "$OUT_DIR/stdin-$GITHOOKS_ENTRY"
pwd > "$OUT_DIR/pwd-$GITHOOKS_ENTRY"
`
	writeScript(t, root, "pre-push", "01-first", script, 0o755)
	writeScript(t, root, "pre-push", "02-second", script, 0o755)

	args := []string{"origin", "with space", "", `quote"s`, "$HOME"}
	stdin := []byte("refs/heads/main 1111 refs/heads/main 2222\n\x00binary\xff\n")

	result, _ := runReal(t, repo, "pre-push", nil, Invocation{
		Args:  args,
		Stdin: stdin,
		Env:   []string{"OUT_DIR=" + outDir},
	})
	if result.Verdict != VerdictPassed {
		t.Fatalf("Verdict = %q, outcomes = %+v", result.Verdict, result.Outcomes)
	}

	wantArgs := strings.Join(args, "\n") + "\n"
	wantDir, _ := filepath.EvalSymlinks(repo)
	for _, name := range []string{"01-first", "02-second"} {
		gotArgs, err := os.ReadFile(filepath.Join(outDir, "args-"+name))
		if err != nil {
			t.Fatal(err)
		}
		if string(gotArgs) != wantArgs {
			t.Errorf("%s args = %q, want %q", name, gotArgs, wantArgs)
		}

		gotStdin, err := os.ReadFile(filepath.Join(outDir, "stdin-"+name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(gotStdin, stdin) {
			t.Errorf("%s stdin = %q, want %q", name, gotStdin, stdin)
		}

		gotPwd, err := os.ReadFile(filepath.Join(outDir, "pwd-"+name))
		if err != nil {
			t.Fatal(err)
		}
		gotDir, _ := filepath.EvalSymlinks(strings.TrimSpace(string(gotPwd)))
		if gotDir != wantDir {
			t.Errorf("%s working directory = %q, want %q", name, gotDir, wantDir)
		}
	}
}

func TestProcess_StdinNotRead(t *testing.T) {
	repo := t.TempDir()
	writeScript(t, filepath.Join(repo, config.DefaultHooksDir), "pre-push", "01", "#!/bin/sh\nexit 0\n", 0o755)

	big := bytes.Repeat([]byte("x"), 4<<20)
	result, _ := runReal(t, repo, "pre-push", nil, Invocation{Stdin: big})

	if result.Verdict != VerdictPassed {
		t.Errorf("Verdict = %q, outcomes = %+v", result.Verdict, result.Outcomes)
	}
}

func TestProcess_ExitCode(t *testing.T) {
	repo := t.TempDir()
	writeScript(t, filepath.Join(repo, config.DefaultHooksDir), "commit-msg", "check", "#!/bin/sh\nexit 7\n", 0o755)

	result, _ := runReal(t, repo, "commit-msg", nil, Invocation{})

	o := result.Outcomes[0]
	if o.Status != StatusFailed || o.ExitCode != 7 {
		t.Errorf("Status = %q, ExitCode = %d; want failed, 7", o.Status, o.ExitCode)
	}
}

func TestProcess_FailedToStart(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "pre-commit", "01-interp", "#!/nonexistent/interpreter\n", 0o755)
	writeScript(t, root, "pre-commit", "02-after", "#!/bin/sh\n", 0o755)

	result, spawned := runReal(t, repo, "pre-commit", nil, Invocation{})

	if spawned != 1 {
		t.Errorf("spawned = %d, want 1", spawned)
	}
	o := result.Outcomes[0]
	if o.Status != StatusFailedToStart {
		t.Errorf("Status = %q, want failed-to-start", o.Status)
	}
	if !strings.Contains(o.Describe(), "failed to start") {
		t.Errorf("Describe() = %q", o.Describe())
	}
	if result.Verdict != VerdictFailed {
		t.Errorf("Verdict = %q, want failed", result.Verdict)
	}
}

func TestProcess_TimeoutKillsProcessGroup(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	// The background sleep inherits stdout; only killing the whole group
	// lets the pipes close before WaitDelay.
	writeScript(t, root, "pre-commit", "01-hang", "#!/bin/sh\nsleep 30 &\nsleep 30\n", 0o755)
	writeScript(t, root, "pre-commit", "02-never", "#!/bin/sh\n", 0o755)

	cfg := config.Default()
	cfg.Entries["pre-commit/01-hang"] = config.EntryConfig{Timeout: 200 * time.Millisecond}
	entries, err := Plan(root, "pre-commit", &cfg)
	if err != nil {
		t.Fatal(err)
	}

	counter := &countingExecutor{inner: &ProcessExecutor{WaitDelay: 10 * time.Second}}
	r := &Runner{Executor: counter}
	start := time.Now()
	result := r.Run(context.Background(), Invocation{Hook: "pre-commit", RepoRoot: repo, HooksRoot: root}, entries)
	elapsed := time.Since(start)

	if elapsed > 5*time.Second {
		t.Errorf("run took %s, process group was not killed", elapsed)
	}
	if counter.n.Load() != 1 {
		t.Errorf("spawned = %d, want 1", counter.n.Load())
	}
	if got := outcomeStatuses(result); !slices.Equal(got, []Status{StatusTimedOut}) {
		t.Errorf("statuses = %v", got)
	}
	if result.Verdict != VerdictFailed {
		t.Errorf("Verdict = %q, want failed", result.Verdict)
	}
}

func TestProcess_InterruptKillsChild(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "pre-push", "01-hang", "#!/bin/sh\nsleep 30\n", 0o755)

	entries, err := Plan(root, "pre-push", nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)
	defer cancel()

	r := &Runner{}
	start := time.Now()
	result := r.Run(ctx, Invocation{Hook: "pre-push", RepoRoot: repo, HooksRoot: root}, entries)

	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("run took %s after interrupt", elapsed)
	}
	if got := outcomeStatuses(result); !slices.Equal(got, []Status{StatusInterrupted}) {
		t.Errorf("statuses = %v", got)
	}
	if result.Verdict != VerdictFailed {
		t.Errorf("Verdict = %q, want failed", result.Verdict)
	}
}

func TestProcess_Stream(t *testing.T) {
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "post-commit", "01", "#!/bin/sh\necho hello\necho oops >&2\n", 0o755)

	entries, err := Plan(root, "post-commit", nil)
	if err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	r := &Runner{Stream: true, Stdout: &stdout, Stderr: &stderr}
	result := r.Run(context.Background(), Invocation{Hook: "post-commit", RepoRoot: repo, HooksRoot: root}, entries)

	if stdout.String() != "hello\n" || stderr.String() != "oops\n" {
		t.Errorf("live stdout = %q, stderr = %q", stdout.String(), stderr.String())
	}
	if string(result.Outcomes[0].Stdout) != "hello\n" {
		t.Errorf("captured stdout = %q", result.Outcomes[0].Stdout)
	}
}

func TestConfigureProcess(t *testing.T) {
	grouped := exec.Command("true")
	configureProcess(grouped, false)
	if grouped.SysProcAttr == nil || !grouped.SysProcAttr.Setpgid || grouped.Cancel == nil {
		t.Error("non-interactive child should get its own process group and a group kill")
	}

	interactive := exec.Command("true")
	configureProcess(interactive, true)
	if interactive.SysProcAttr != nil || interactive.Cancel != nil {
		t.Error("interactive child should stay in the caller's process group")
	}
}

// An interactive entry shares the caller's process group, so reading from
// the terminal does not stop it with SIGTTIN.
func TestProcess_InteractiveKeepsProcessGroup(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("needs /proc")
	}
	repo := t.TempDir()
	root := filepath.Join(repo, config.DefaultHooksDir)
	writeScript(t, root, "pre-commit", "01-pgid", "#!/bin/sh\ncut -d' ' -f5 /proc/$$/stat\n", 0o755)

	entries, err := Plan(root, "pre-commit", nil)
	if err != nil {
		t.Fatal(err)
	}
	inv := Invocation{Hook: "pre-commit", RepoRoot: repo, HooksRoot: root}
	pgid := func(interactive bool) string {
		r := &Runner{Executor: &ProcessExecutor{Interactive: interactive}}
		res := r.Run(context.Background(), inv, entries)
		if res.Verdict != VerdictPassed {
			t.Fatalf("Verdict = %q, stderr = %s", res.Verdict, res.Outcomes[0].Stderr)
		}
		return strings.TrimSpace(string(res.Outcomes[0].Stdout))
	}

	own := strconv.Itoa(syscall.Getpgrp())
	if got := pgid(true); got != own {
		t.Errorf("interactive child pgid = %s, want caller's %s", got, own)
	}
	if got := pgid(false); got == own {
		t.Errorf("isolated child pgid = %s, want a new group", got)
	}
}
