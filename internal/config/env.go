package config

import (
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvEnabled  = "GITHOOKS"
	EnvSkip     = "GITHOOKS_SKIP"
	EnvHooksDir = "GITHOOKS_HOOKS_DIR"
	EnvOutput   = "GITHOOKS_OUTPUT"
)

// DisabledByEnv reports whether GITHOOKS turns every run off.
func DisabledByEnv(getenv func(string) string) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvEnabled))) {
	case "0", "false", "off", "no":
		return true
	}
	return false
}

// ApplyEnv returns a copy of c with environment overrides applied.
// getenv is usually os.Getenv.
func ApplyEnv(c *Config, getenv func(string) string) (*Config, error) {
	out := c.Clone()

	out.Disabled = DisabledByEnv(getenv)

	if dir := getenv(EnvHooksDir); dir != "" {
		out.HooksDir = dir
	}

	if mode := getenv(EnvOutput); mode != "" {
		if err := validateEnum(mode, EnvOutput, ValidOutputModes); err != nil {
			return nil, err
		}
		out.Output = mode
	}

	for _, item := range strings.Split(getenv(EnvSkip), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out.Skip = append(out.Skip, item)
		}
	}

	return out, nil
}
