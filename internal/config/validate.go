package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/palotasb/githooks/internal/git"
)

// Valid enum values for configuration fields.
var (
	ValidOutputModes = []string{OutputBuffer, OutputStream}
	ValidThemes      = []string{ThemeDefault, ThemeDracula, ThemeNord, ThemeNone}
)

func (raw *rawFile) validate() (*FileConfig, error) {
	fc := &FileConfig{
		HooksDir:     raw.HooksDir,
		Output:       raw.Output,
		Theme:        raw.Theme,
		HistoryLimit: raw.HistoryLimit,
		Types:        make(map[string]TypeConfig, len(raw.Types)),
		Entries:      make(map[string]EntryConfig, len(raw.Entries)),
	}

	var err error
	if fc.Timeout, err = parseTimeout("timeout", raw.Timeout); err != nil {
		return nil, err
	}
	if err := validateEnum(raw.Output, "output", ValidOutputModes); err != nil {
		return nil, err
	}
	if err := validateEnum(raw.Theme, "theme", ValidThemes); err != nil {
		return nil, err
	}
	if raw.HistoryLimit != nil && *raw.HistoryLimit < 0 {
		return nil, &ConfigError{Key: "history_limit", Err: fmt.Errorf("must not be negative, got %d", *raw.HistoryLimit)}
	}

	for name, rt := range raw.Types {
		key := "types." + name
		if err := validateHookName(key, name); err != nil {
			return nil, err
		}
		timeout, err := parseTimeout(key+".timeout", rt.Timeout)
		if err != nil {
			return nil, err
		}
		fc.Types[name] = TypeConfig{Timeout: timeout, Enabled: rt.Enabled}
	}

	for name, re := range raw.Entries {
		key := fmt.Sprintf("entries.%q", name)
		hook, _, ok := SplitEntryKey(name)
		if !ok {
			return nil, &ConfigError{Key: key, Err: errors.New(`entry keys must look like "<hook>/<file>"`)}
		}
		if err := validateHookName(key, hook); err != nil {
			return nil, err
		}
		timeout, err := parseTimeout(key+".timeout", re.Timeout)
		if err != nil {
			return nil, err
		}
		fc.Entries[name] = EntryConfig{Enabled: re.Enabled, Fatal: re.Fatal, Timeout: timeout}
	}

	return fc, nil
}

// SplitEntryKey splits "<hook>/<file>" into its parts.
func SplitEntryKey(key string) (hook, name string, ok bool) {
	hook, name, found := strings.Cut(key, "/")
	if !found || hook == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return hook, name, true
}

// EntryKey joins a hook type and a file name into an entry key.
func EntryKey(hook, name string) string {
	return hook + "/" + name
}

// parseTimeout parses an optional duration string. Empty means unset.
func parseTimeout(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ConfigError{Key: key, Err: fmt.Errorf("invalid duration %q", value)}
	}
	if d <= 0 {
		return 0, &ConfigError{Key: key, Err: fmt.Errorf("must be positive, got %q", value)}
	}
	return d, nil
}

func validateHookName(key, name string) error {
	if git.IsHook(name) {
		return nil
	}
	msg := fmt.Sprintf("unknown hook type %q", name)
	if suggestion := git.SuggestHook(name); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &ConfigError{Key: key, Err: errors.New(msg)}
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, key string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return &ConfigError{Key: key, Err: fmt.Errorf("invalid value %q: must be %s", value, formatOptions(allowed))}
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
