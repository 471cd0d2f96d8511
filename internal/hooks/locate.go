package hooks

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
)

// DiscoveryError reports a hooks root that exists but cannot be read.
// Callers treat it as a failed run rather than silently skipping checks.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot read hooks directory %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsDiscoveryError reports whether err is or wraps a *DiscoveryError.
func IsDiscoveryError(err error) bool {
	var de *DiscoveryError
	return errors.As(err, &de)
}

// Script is a file found in a hook subdirectory.
type Script struct {
	Hook       string
	Name       string
	Path       string
	Executable bool
}

// Entry is a script selected to run, with its resolved policy.
type Entry struct {
	Hook   string
	Name   string
	Path   string
	Policy Policy
}

// Key returns the "<hook>/<name>" form used in configuration.
func (e Entry) Key() string {
	return config.EntryKey(e.Hook, e.Name)
}

// Scan lists every regular file in hooksRoot/<hook>, executable or not,
// sorted by name. Dotfiles are ignored and symlinks are followed.
// Unknown hook types, a missing hooks root and a missing subdirectory
// all yield no scripts.
func Scan(hooksRoot, hook string) ([]Script, error) {
	if !git.IsHook(hook) {
		return nil, nil
	}

	if err := checkRoot(hooksRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	dir := filepath.Join(hooksRoot, hook)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &DiscoveryError{Path: dir, Err: err}
	}

	var scripts []Script
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			// Broken symlinks and directories are not scripts.
			continue
		}
		scripts = append(scripts, Script{
			Hook:       hook,
			Name:       name,
			Path:       path,
			Executable: isExecutable(name, info),
		})
	}

	slices.SortFunc(scripts, func(a, b Script) int {
		return strings.Compare(a.Name, b.Name)
	})
	return scripts, nil
}

// Locate returns the executable scripts of one hook type in run order.
func Locate(hooksRoot, hook string) ([]Script, error) {
	scripts, err := Scan(hooksRoot, hook)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(scripts, func(s Script) bool { return !s.Executable }), nil
}

// Plan locates the entries of one hook type and resolves their policies.
// The returned slice is fixed: scripts added later are not picked up.
func Plan(hooksRoot, hook string, cfg *config.Config) ([]Entry, error) {
	scripts, err := Locate(hooksRoot, hook)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(scripts))
	for _, s := range scripts {
		entries = append(entries, Entry{
			Hook:   s.Hook,
			Name:   s.Name,
			Path:   s.Path,
			Policy: ResolvePolicy(s.Hook, s.Name, cfg),
		})
	}
	return entries, nil
}

// Types lists the subdirectories of hooksRoot, split into known hook types
// and names git never invokes. Both are sorted. A missing root yields nothing.
func Types(hooksRoot string) (known, unknown []string, err error) {
	if err := checkRoot(hooksRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	dirEntries, err := os.ReadDir(hooksRoot)
	if err != nil {
		return nil, nil, &DiscoveryError{Path: hooksRoot, Err: err}
	}
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(hooksRoot, name))
		if err != nil || !info.IsDir() {
			continue
		}
		if git.IsHook(name) {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	return known, unknown, nil
}

// checkRoot verifies hooksRoot is a readable directory. A missing root is
// returned as fs.ErrNotExist so callers can treat it as empty.
func checkRoot(hooksRoot string) error {
	info, err := os.Stat(hooksRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fs.ErrNotExist
		}
		return &DiscoveryError{Path: hooksRoot, Err: err}
	}
	if !info.IsDir() {
		return &DiscoveryError{Path: hooksRoot, Err: errors.New("not a directory")}
	}
	f, err := os.Open(hooksRoot)
	if err != nil {
		return &DiscoveryError{Path: hooksRoot, Err: err}
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &DiscoveryError{Path: hooksRoot, Err: err}
	}
	return nil
}
