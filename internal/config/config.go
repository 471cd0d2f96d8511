package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultHooksDir is the hooks root, relative to the work tree root.
	DefaultHooksDir = "githooks"
	// DefaultTimeout bounds a single entry unless its hook type or entry overrides it.
	DefaultTimeout = 5 * time.Minute
	// DefaultHistoryLimit is the number of runs kept in the journal.
	DefaultHistoryLimit = 50

	OutputBuffer = "buffer"
	OutputStream = "stream"

	ThemeDefault = "default"
	ThemeDracula = "dracula"
	ThemeNord    = "nord"
	ThemeNone    = "none"

	// LocalConfigFileName is the preferred per-repo config file.
	LocalConfigFileName = ".githooks.toml"
)

// localConfigNames lists accepted per-repo config files in lookup order.
var localConfigNames = []string{LocalConfigFileName, ".githooks.yaml", ".githooks.yml"}

// TypeConfig holds defaults for every entry of one hook type.
type TypeConfig struct {
	Timeout time.Duration // 0 = inherit
	Enabled *bool         // nil = inherit
}

// EntryConfig holds overrides for one entry, keyed "<hook>/<file>".
type EntryConfig struct {
	Enabled *bool
	Fatal   *bool
	Timeout time.Duration // 0 = inherit
}

// Config holds the effective githooks configuration.
type Config struct {
	HooksDir     string
	Timeout      time.Duration
	Output       string
	Theme        string
	HistoryLimit int
	Types        map[string]TypeConfig
	Entries      map[string]EntryConfig

	// Skip lists entries disabled through GITHOOKS_SKIP, either "<hook>/<file>" or "<file>".
	Skip []string
	// Disabled is set by GITHOOKS=0 and turns every run into a no-op.
	Disabled bool
}

// Default returns the default configuration.
// pre-push hooks get a longer timeout since they commonly run full test suites.
func Default() Config {
	return Config{
		HooksDir:     DefaultHooksDir,
		Timeout:      DefaultTimeout,
		Output:       OutputBuffer,
		Theme:        ThemeDefault,
		HistoryLimit: DefaultHistoryLimit,
		Types: map[string]TypeConfig{
			"pre-push": {Timeout: 15 * time.Minute},
		},
		Entries: map[string]EntryConfig{},
	}
}

// Clone returns a copy whose maps and slices can be modified independently.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Types = maps.Clone(c.Types)
	if cp.Types == nil {
		cp.Types = map[string]TypeConfig{}
	}
	cp.Entries = maps.Clone(c.Entries)
	if cp.Entries == nil {
		cp.Entries = map[string]EntryConfig{}
	}
	cp.Skip = append([]string(nil), c.Skip...)
	return &cp
}

// HooksRoot returns the absolute hooks root for a work tree.
func (c *Config) HooksRoot(repoRoot string) string {
	dir := c.HooksDir
	if dir == "" {
		dir = DefaultHooksDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(repoRoot, dir)
}

// GlobalPath returns the path to the global config file.
// GITHOOKS_CONFIG overrides the default location.
func GlobalPath() (string, error) {
	if p := os.Getenv("GITHOOKS_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "githooks", "config.toml"), nil
}

// Load reads the global config.
// Returns Default() if the file doesn't exist (no error).
// Returns a *ConfigError if the file exists but is invalid.
func Load() (Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile merges the config file at path onto the defaults.
// A missing file yields Default() without error.
func LoadFile(path string) (Config, error) {
	fc, err := ParseFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	base := Default()
	return *Merge(&base, fc), nil
}

// LoadLocal reads the per-repo config from the work tree root.
// Returns nil (no error) if no config file exists.
func LoadLocal(repoRoot string) (*FileConfig, error) {
	for _, name := range localConfigNames {
		fc, err := ParseFile(filepath.Join(repoRoot, name))
		if err == nil {
			return fc, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, nil
}

// LocalPath returns the per-repo config file in use, or the preferred
// file name when none exists yet.
func LocalPath(repoRoot string) string {
	for _, name := range localConfigNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(repoRoot, LocalConfigFileName)
}

// WriteTemplate writes content to path, refusing to overwrite unless force is set.
func WriteTemplate(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
