package doctor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/shim"
)

// newTarget lays out a fake repository with a hooks root and hook slots.
// Check never runs git against it.
func newTarget(t *testing.T) Target {
	t.Helper()
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(filepath.Join(gitDir, "hooks"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	return Target{
		Repo:   &git.Repo{Root: root, GitDir: gitDir, HooksPath: filepath.Join(gitDir, "hooks")},
		Config: &cfg,
	}
}

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), mode); err != nil {
		t.Fatal(err)
	}
}

func issueKeys(res *Result) map[string]Issue {
	m := make(map[string]Issue, len(res.Issues))
	for _, is := range res.Issues {
		m[is.Key] = is
	}
	return m
}

func TestCheck(t *testing.T) {
	if err := git.CheckGit(); err != nil {
		t.Skip("git not installed")
	}
	t.Parallel()

	t.Run("missing hooks root is a warning", func(t *testing.T) {
		t.Parallel()
		tg := newTarget(t)
		res := Check(context.Background(), tg)

		root := tg.Config.HooksRoot(tg.Repo.Root)
		is, ok := issueKeys(res)[root]
		if !ok {
			t.Fatalf("expected issue for %s, got %+v", root, res.Issues)
		}
		if is.Severity != SeverityWarning {
			t.Errorf("severity = %v, want warning", is.Severity)
		}
		if res.Errors() != 0 {
			t.Errorf("Errors() = %d, want 0", res.Errors())
		}
	})

	t.Run("hook directory problems", func(t *testing.T) {
		t.Parallel()
		tg := newTarget(t)
		root := tg.Config.HooksRoot(tg.Repo.Root)
		writeFile(t, filepath.Join(root, "pre-commit", "01-fmt"), 0o755)
		writeFile(t, filepath.Join(root, "pre-commit", "02-draft"), 0o644)
		writeFile(t, filepath.Join(root, "pre-comit", "01-x"), 0o755)

		res := Check(context.Background(), tg)
		issues := issueKeys(res)

		if is := issues["pre-commit"]; is.FixAction != FixInstallShim || is.Severity != SeverityError {
			t.Errorf("pre-commit issue = %+v, want missing shim error", is)
		}
		if is := issues["pre-commit/02-draft"]; is.Severity != SeverityWarning {
			t.Errorf("draft issue = %+v, want warning", is)
		}
		if is := issues["pre-comit"]; !strings.Contains(is.Hint, "pre-commit") {
			t.Errorf("unknown dir hint = %q, want suggestion", is.Hint)
		}
	})

	t.Run("foreign and outdated shims", func(t *testing.T) {
		t.Parallel()
		tg := newTarget(t)
		root := tg.Config.HooksRoot(tg.Repo.Root)
		writeFile(t, filepath.Join(root, "pre-commit", "01-fmt"), 0o755)
		writeFile(t, filepath.Join(root, "pre-push", "01-test"), 0o755)

		writeFile(t, filepath.Join(tg.Repo.HooksPath, "pre-commit"), 0o755)
		outdated := "#!/bin/sh\n" + shim.Marker + "\nexec githooks run pre-push\n"
		if err := os.WriteFile(filepath.Join(tg.Repo.HooksPath, "pre-push"), []byte(outdated), 0o755); err != nil {
			t.Fatal(err)
		}

		issues := issueKeys(Check(context.Background(), tg))
		if is := issues["pre-commit"]; is.Severity != SeverityError || is.FixAction != FixNone {
			t.Errorf("foreign hook issue = %+v, want manual error", is)
		}
		if is := issues["pre-push"]; is.FixAction != FixReinstallShim {
			t.Errorf("outdated shim issue = %+v, want reinstall", is)
		}
	})

	t.Run("config error", func(t *testing.T) {
		t.Parallel()
		tg := newTarget(t)
		tg.ConfigErr = &config.ConfigError{Key: "timeout", Err: os.ErrInvalid}

		res := Check(context.Background(), tg)
		if is := issueKeys(res)["config"]; is.Severity != SeverityError {
			t.Errorf("config issue = %+v, want error", is)
		}
	})

	t.Run("corrupt history", func(t *testing.T) {
		t.Parallel()
		tg := newTarget(t)
		path := filepath.Join(tg.Repo.GitDir, "githooks", "history.json")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		if is := issueKeys(Check(context.Background(), tg))[path]; is.FixAction != FixResetHistory {
			t.Errorf("history issue = %+v, want reset", is)
		}
	})
}

func TestRun_Fix(t *testing.T) {
	if err := git.CheckGit(); err != nil {
		t.Skip("git not installed")
	}
	t.Parallel()

	tg := newTarget(t)
	root := tg.Config.HooksRoot(tg.Repo.Root)
	writeFile(t, filepath.Join(root, "commit-msg", "01-check"), 0o755)

	var buf bytes.Buffer
	if errs := Run(context.Background(), &buf, tg, false); errs != 1 {
		t.Fatalf("Run() = %d errors, want 1\n%s", errs, buf.String())
	}
	if !strings.Contains(buf.String(), "githooks doctor --fix") {
		t.Errorf("expected --fix hint:\n%s", buf.String())
	}

	buf.Reset()
	if errs := Run(context.Background(), &buf, tg, true); errs != 0 {
		t.Fatalf("Run(fix) = %d errors, want 0\n%s", errs, buf.String())
	}
	st, err := shim.Inspect(tg.Repo.HooksPath, "commit-msg")
	if err != nil || st.State != shim.StateShim {
		t.Errorf("shim not installed after fix: %+v, %v", st, err)
	}

	buf.Reset()
	if errs := Run(context.Background(), &buf, tg, false); errs != 0 {
		t.Errorf("after fix Run() = %d errors\n%s", errs, buf.String())
	}
	if !strings.Contains(ansi.Strip(buf.String()), "No issues found") {
		t.Errorf("expected clean report:\n%s", buf.String())
	}
}
