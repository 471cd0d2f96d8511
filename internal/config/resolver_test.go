package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolver_NoLocalConfig(t *testing.T) {
	t.Parallel()

	global := Default()
	global.Timeout = time.Minute
	r := NewResolver(&global, envMap(nil))

	if r.Global() != &global {
		t.Error("Global() should return the global config")
	}

	cfg, err := r.ConfigForRepo(t.TempDir())
	if err != nil {
		t.Fatalf("ConfigForRepo() error = %v", err)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want global 1m", cfg.Timeout)
	}
	if cfg == &global {
		t.Error("effective config must not alias the global config")
	}
}

func TestResolver_LocalThenEnv(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	local := `hooks_dir = ".hooks"
output = "stream"

[entries."pre-commit/01-lint"]
fatal = false
`
	if err := os.WriteFile(filepath.Join(repo, LocalConfigFileName), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}

	global := Default()
	r := NewResolver(&global, envMap(map[string]string{EnvOutput: OutputBuffer}))

	cfg, err := r.ConfigForRepo(repo)
	if err != nil {
		t.Fatalf("ConfigForRepo() error = %v", err)
	}
	if cfg.HooksDir != ".hooks" {
		t.Errorf("HooksDir = %q, want local .hooks", cfg.HooksDir)
	}
	if cfg.Output != OutputBuffer {
		t.Errorf("Output = %q, environment should override local", cfg.Output)
	}
	e, ok := cfg.Entries["pre-commit/01-lint"]
	if !ok || e.Fatal == nil || *e.Fatal {
		t.Errorf("entry override not merged: %+v", cfg.Entries)
	}
	if global.HooksDir != DefaultHooksDir || len(global.Entries) != 0 {
		t.Error("resolving a repo modified the global config")
	}
}

func TestResolver_CachesPerRepo(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	path := filepath.Join(repo, LocalConfigFileName)
	if err := os.WriteFile(path, []byte(`hooks_dir = "first"`), 0o644); err != nil {
		t.Fatal(err)
	}

	global := Default()
	r := NewResolver(&global, envMap(nil))
	first, err := r.ConfigForRepo(repo)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`hooks_dir = "second"`), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := r.ConfigForRepo(repo)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || second.HooksDir != "first" {
		t.Errorf("second lookup = %q, want cached %q", second.HooksDir, "first")
	}
}

func TestResolver_InvalidLocalConfig(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	if err := os.WriteFile(filepath.Join(repo, LocalConfigFileName), []byte(`timeout = "soon"`), 0o644); err != nil {
		t.Fatal(err)
	}

	global := Default()
	_, err := NewResolver(&global, envMap(nil)).ConfigForRepo(repo)
	if !IsConfigError(err) {
		t.Fatalf("ConfigForRepo() error = %v, want *ConfigError", err)
	}
}

func TestResolverContext(t *testing.T) {
	t.Parallel()

	if ResolverFromContext(context.Background()) != nil {
		t.Error("empty context should have no resolver")
	}
	global := Default()
	r := NewResolver(&global, envMap(nil))
	if got := ResolverFromContext(WithResolver(context.Background(), r)); got != r {
		t.Error("ResolverFromContext() did not return the attached resolver")
	}
}
