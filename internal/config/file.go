package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig is one parsed config file. Zero values and nil pointers mean
// "not set" and inherit from the layer below.
type FileConfig struct {
	Path         string
	HooksDir     string
	Timeout      time.Duration
	Output       string
	Theme        string
	HistoryLimit *int
	Types        map[string]TypeConfig
	Entries      map[string]EntryConfig
}

// rawType, rawEntry and rawFile mirror the on-disk format before durations
// and keys are validated.
type rawType struct {
	Timeout string `toml:"timeout,omitempty" yaml:"timeout,omitempty"`
	Enabled *bool  `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
}

type rawEntry struct {
	Enabled *bool  `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Fatal   *bool  `toml:"fatal,omitempty" yaml:"fatal,omitempty"`
	Timeout string `toml:"timeout,omitempty" yaml:"timeout,omitempty"`
}

type rawFile struct {
	HooksDir     string              `toml:"hooks_dir,omitempty" yaml:"hooks_dir,omitempty"`
	Timeout      string              `toml:"timeout,omitempty" yaml:"timeout,omitempty"`
	Output       string              `toml:"output,omitempty" yaml:"output,omitempty"`
	Theme        string              `toml:"theme,omitempty" yaml:"theme,omitempty"`
	HistoryLimit *int                `toml:"history_limit,omitempty" yaml:"history_limit,omitempty"`
	Types        map[string]rawType  `toml:"types,omitempty" yaml:"types,omitempty"`
	Entries      map[string]rawEntry `toml:"entries,omitempty" yaml:"entries,omitempty"`
}

// ParseFile reads and validates a config file. The format is chosen by
// extension: .yaml/.yml are YAML, everything else is TOML.
// A missing file returns an error satisfying errors.Is(err, os.ErrNotExist).
func ParseFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates config data; path selects the format and
// is used in error messages.
func Parse(path string, data []byte) (*FileConfig, error) {
	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	fc, err := raw.validate()
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) && ce.Path == "" {
			ce.Path = path
		}
		return nil, err
	}
	fc.Path = path
	return fc, nil
}

func decode(path string, data []byte) (*rawFile, error) {
	var raw rawFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ConfigError{Path: path, Err: err}
		}
	default:
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &ConfigError{Path: path, Key: undecoded[0].String(), Err: errUnknownKey}
		}
	}

	return &raw, nil
}

// Encode writes c in the TOML file format. Environment-only settings
// (skip list, GITHOOKS=0) are not part of the file format and are omitted.
func Encode(w io.Writer, c *Config) error {
	limit := c.HistoryLimit
	raw := rawFile{
		HooksDir:     c.HooksDir,
		Timeout:      formatDuration(c.Timeout),
		Output:       c.Output,
		Theme:        c.Theme,
		HistoryLimit: &limit,
		Types:        make(map[string]rawType, len(c.Types)),
		Entries:      make(map[string]rawEntry, len(c.Entries)),
	}
	for name, tc := range c.Types {
		raw.Types[name] = rawType{Timeout: formatDuration(tc.Timeout), Enabled: tc.Enabled}
	}
	for key, ec := range c.Entries {
		raw.Entries[key] = rawEntry{Enabled: ec.Enabled, Fatal: ec.Fatal, Timeout: formatDuration(ec.Timeout)}
	}
	return toml.NewEncoder(w).Encode(raw)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}
