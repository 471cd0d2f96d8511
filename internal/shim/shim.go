// Package shim manages the small scripts githooks places in git's hook slots.
//
// A shim only forwards the hook to "githooks exec <hook>". It is recognised by
// a marker line near the top so that install and uninstall never touch hooks
// written by someone else unless asked to.
package shim

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Marker identifies a githooks shim. It must appear in the first few lines.
const Marker = "# githooks-shim v1"

// BackupSuffix is appended to a foreign hook moved aside by a forced install.
const BackupSuffix = ".githooks.bak"

// markerLines is how many leading lines Inspect searches for Marker.
const markerLines = 10

// ErrForeignHook is returned when a hook slot holds a script githooks did not write.
var ErrForeignHook = errors.New("hook exists and was not installed by githooks")

// ErrBackupExists is returned by a forced install when the backup slot is
// already taken. The earlier backup is the user's original hook.
var ErrBackupExists = errors.New("a backup of an earlier hook already exists")

// State describes what occupies a hook slot.
type State int

const (
	StateMissing State = iota // nothing installed
	StateShim                 // a githooks shim
	StateForeign              // some other hook
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateShim:
		return "installed"
	case StateForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Status reports the contents of one hook slot.
type Status struct {
	Hook   string
	Path   string
	State  State
	Backup bool // a backup of a foreign hook exists next to the slot
}

// Script returns the shim for hook. GITHOOKS_BIN overrides the binary at
// hook time; a missing binary prints a warning and lets git proceed.
func Script(hook string) string {
	return fmt.Sprintf(`#!/bin/sh
%s
# Installed by githooks. Runs every executable in the repository's
# hooks directory for %[2]s. Remove with: githooks uninstall %[2]s
bin="${GITHOOKS_BIN:-githooks}"
if ! command -v "$bin" >/dev/null 2>&1; then
	echo "githooks: $bin not found on PATH, skipping %[2]s hooks" >&2
	exit 0
fi
exec "$bin" exec %[2]s "$@"
`, Marker, hook)
}

// Inspect reports what occupies hooksPath/hook.
func Inspect(hooksPath, hook string) (Status, error) {
	path := filepath.Join(hooksPath, hook)
	st := Status{Hook: hook, Path: path}

	if _, err := os.Stat(path + BackupSuffix); err == nil {
		st.Backup = true
	}

	isShim, err := hasMarker(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		st.State = StateMissing
	case err != nil:
		return st, fmt.Errorf("failed to read %s: %w", path, err)
	case isShim:
		st.State = StateShim
	default:
		st.State = StateForeign
	}
	return st, nil
}

// Install writes the shim for hook into hooksPath. An existing shim is
// rewritten. A foreign hook is refused with ErrForeignHook unless force is
// set, in which case it is moved to <hook>.githooks.bak first. An existing
// backup is never overwritten.
// It reports whether a backup was made.
func Install(hooksPath, hook string, force bool) (backedUp bool, err error) {
	st, err := Inspect(hooksPath, hook)
	if err != nil {
		return false, err
	}

	if st.State == StateForeign {
		if !force {
			return false, fmt.Errorf("%s: %w (use --force to back it up and replace it)", st.Path, ErrForeignHook)
		}
		if st.Backup {
			return false, fmt.Errorf("%s: %w at %s%s; move it away first", st.Path, ErrBackupExists, st.Path, BackupSuffix)
		}
		if err := os.Rename(st.Path, st.Path+BackupSuffix); err != nil {
			return false, fmt.Errorf("failed to back up %s: %w", st.Path, err)
		}
		backedUp = true
	}

	if err := os.MkdirAll(hooksPath, 0o755); err != nil {
		return backedUp, fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := writeExecutable(st.Path, Script(hook)); err != nil {
		return backedUp, err
	}
	return backedUp, nil
}

// Uninstall removes the shim for hook and restores a backup if one exists.
// Foreign hooks are left alone and reported with ErrForeignHook.
func Uninstall(hooksPath, hook string) (removed, restored bool, err error) {
	st, err := Inspect(hooksPath, hook)
	if err != nil {
		return false, false, err
	}

	switch st.State {
	case StateMissing:
		return false, false, nil
	case StateForeign:
		return false, false, fmt.Errorf("%s: %w", st.Path, ErrForeignHook)
	}

	if err := os.Remove(st.Path); err != nil {
		return false, false, fmt.Errorf("failed to remove %s: %w", st.Path, err)
	}
	if st.Backup {
		if err := os.Rename(st.Path+BackupSuffix, st.Path); err != nil {
			return true, false, fmt.Errorf("failed to restore %s: %w", st.Path, err)
		}
		restored = true
	}
	return true, restored, nil
}

// hasMarker reports whether Marker appears in the first lines of path.
func hasMarker(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < markerLines && scanner.Scan(); i++ {
		if strings.TrimSpace(scanner.Text()) == Marker {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return false, err
	}
	return false, nil
}

func writeExecutable(path, content string) error {
	// #nosec G306 -- git hooks must be executable for git to run them
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}
