package config

import (
	"errors"
	"fmt"
)

var errUnknownKey = errors.New("unknown key")

// ConfigError reports malformed configuration. It aborts a hook run before
// any script is started.
type ConfigError struct {
	Path string // file the problem came from; empty for environment or defaults
	Key  string // offending key, dotted
	Err  error
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", e.Key, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return "invalid config: " + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
