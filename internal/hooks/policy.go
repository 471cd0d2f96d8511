package hooks

import (
	"slices"
	"time"

	"github.com/palotasb/githooks/internal/config"
)

// Policy controls how a single entry runs.
type Policy struct {
	Enabled bool
	Fatal   bool          // a failure stops the run and fails the verdict
	Timeout time.Duration // 0 means no limit
}

// DefaultPolicy is the policy of an entry nothing configures.
func DefaultPolicy() Policy {
	return Policy{Enabled: true, Fatal: true, Timeout: config.DefaultTimeout}
}

// ResolvePolicy merges the configuration for the entry name of hook type hook.
// Later layers win: defaults, [types.<hook>], [entries."<hook>/<name>"], then
// the skip list. A nil cfg yields DefaultPolicy.
func ResolvePolicy(hook, name string, cfg *config.Config) Policy {
	p := DefaultPolicy()
	if cfg == nil {
		return p
	}

	if cfg.Timeout > 0 {
		p.Timeout = cfg.Timeout
	}

	if tc, ok := cfg.Types[hook]; ok {
		if tc.Timeout > 0 {
			p.Timeout = tc.Timeout
		}
		if tc.Enabled != nil {
			p.Enabled = *tc.Enabled
		}
	}

	if ec, ok := cfg.Entries[config.EntryKey(hook, name)]; ok {
		if ec.Enabled != nil {
			p.Enabled = *ec.Enabled
		}
		if ec.Fatal != nil {
			p.Fatal = *ec.Fatal
		}
		if ec.Timeout > 0 {
			p.Timeout = ec.Timeout
		}
	}

	if slices.Contains(cfg.Skip, name) || slices.Contains(cfg.Skip, config.EntryKey(hook, name)) {
		p.Enabled = false
	}

	return p
}
