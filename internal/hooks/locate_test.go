//go:build !windows

package hooks

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/palotasb/githooks/internal/config"
)

// writeScript creates hooksRoot/hook/name with the given mode.
func writeScript(t *testing.T, hooksRoot, hook, name, body string, mode os.FileMode) string {
	t.Helper()
	dir := filepath.Join(hooksRoot, hook)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), mode); err != nil {
		t.Fatal(err)
	}
	// WriteFile is subject to umask; set the mode explicitly.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func scriptNames(scripts []Script) []string {
	names := make([]string, len(scripts))
	for i, s := range scripts {
		names[i] = s.Name
	}
	return names
}

func TestLocate_OrderAndFiltering(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// Created out of order on purpose.
	writeScript(t, root, "pre-commit", "b-lint", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-commit", "10-test", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-commit", "02-format", "#!/bin/sh\n", 0o700)
	writeScript(t, root, "pre-commit", "A-upper", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-commit", "03-draft", "#!/bin/sh\n", 0o644)
	writeScript(t, root, "pre-commit", ".hidden", "#!/bin/sh\n", 0o755)
	if err := os.Mkdir(filepath.Join(root, "pre-commit", "04-dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	scripts, err := Locate(root, "pre-commit")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	want := []string{"02-format", "10-test", "A-upper", "b-lint"}
	if got := scriptNames(scripts); !slices.Equal(got, want) {
		t.Errorf("Locate() = %v, want %v", got, want)
	}
	for _, s := range scripts {
		if s.Hook != "pre-commit" || !filepath.IsAbs(s.Path) || !s.Executable {
			t.Errorf("unexpected script %+v", s)
		}
	}
}

func TestScan_IncludesNonExecutable(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "pre-push", "01-run", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-push", "02-draft", "#!/bin/sh\n", 0o644)

	scripts, err := Scan(root, "pre-push")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("Scan() returned %d scripts, want 2", len(scripts))
	}
	if !scripts[0].Executable || scripts[1].Executable {
		t.Errorf("Executable flags = %v, %v; want true, false", scripts[0].Executable, scripts[1].Executable)
	}
}

func TestLocate_FollowsSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := writeScript(t, root, "shared", "lint.sh", "#!/bin/sh\n", 0o755)
	if err := os.MkdirAll(filepath.Join(root, "pre-commit"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(root, "pre-commit", "01-lint")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "pre-commit", "02-broken")); err != nil {
		t.Fatal(err)
	}

	scripts, err := Locate(root, "pre-commit")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got := scriptNames(scripts); !slices.Equal(got, []string{"01-lint"}) {
		t.Errorf("Locate() = %v, want [01-lint]", got)
	}
}

func TestLocate_Empty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "pre-commit", "01", "#!/bin/sh\n", 0o755)
	if err := os.MkdirAll(filepath.Join(root, "post-merge"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		root string
		hook string
	}{
		{"missing root", filepath.Join(root, "nope"), "pre-commit"},
		{"missing subdirectory", root, "commit-msg"},
		{"empty subdirectory", root, "post-merge"},
		{"unknown hook type", root, "pre-comit"},
		{"path traversal", root, "../pre-commit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scripts, err := Locate(tt.root, tt.hook)
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			if len(scripts) != 0 {
				t.Errorf("Locate() = %v, want none", scriptNames(scripts))
			}
		})
	}
}

func TestLocate_DiscoveryError(t *testing.T) {
	t.Parallel()

	t.Run("root is a file", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "hooks")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Locate(file, "pre-commit")
		if !IsDiscoveryError(err) {
			t.Errorf("Locate() error = %v, want DiscoveryError", err)
		}
	})

	t.Run("root unreadable", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("permissions are not enforced for root")
		}
		root := t.TempDir()
		writeScript(t, root, "pre-commit", "01", "#!/bin/sh\n", 0o755)
		if err := os.Chmod(root, 0o311); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(root, 0o755) })

		_, err := Locate(root, "pre-commit")
		if !IsDiscoveryError(err) {
			t.Errorf("Locate() error = %v, want DiscoveryError", err)
		}
	})
}

func TestPlan_ResolvesPolicy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "pre-commit", "01-warn", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-commit", "02-test", "#!/bin/sh\n", 0o755)

	cfg := config.Default()
	cfg.Entries["pre-commit/01-warn"] = config.EntryConfig{Fatal: boolPtr(false)}

	entries, err := Plan(root, "pre-commit", &cfg)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Plan() returned %d entries, want 2", len(entries))
	}
	if entries[0].Policy.Fatal {
		t.Error("01-warn should be advisory")
	}
	if !entries[1].Policy.Fatal {
		t.Error("02-test should be fatal")
	}
	if entries[0].Key() != "pre-commit/01-warn" {
		t.Errorf("Key() = %q", entries[0].Key())
	}
}

func TestTypes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "pre-push", "01", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "pre-commit", "01", "#!/bin/sh\n", 0o755)
	writeScript(t, root, "lib", "common.sh", "", 0o644)
	if err := os.WriteFile(filepath.Join(root, "README.md"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	known, unknown, err := Types(root)
	if err != nil {
		t.Fatalf("Types() error = %v", err)
	}
	if !slices.Equal(known, []string{"pre-commit", "pre-push"}) {
		t.Errorf("known = %v", known)
	}
	if !slices.Equal(unknown, []string{"lib"}) {
		t.Errorf("unknown = %v", unknown)
	}

	known, unknown, err = Types(filepath.Join(root, "missing"))
	if err != nil || known != nil || unknown != nil {
		t.Errorf("Types(missing) = %v, %v, %v", known, unknown, err)
	}
}
