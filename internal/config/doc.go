// Package config handles loading, merging and validation of githooks configuration.
//
// # Configuration Sources (highest priority first)
//
//   - Environment: GITHOOKS=0, GITHOOKS_SKIP, GITHOOKS_HOOKS_DIR, GITHOOKS_OUTPUT
//   - Per-repo file at the work tree root: .githooks.toml (or .githooks.yaml/.yml)
//   - Global file: ~/.config/githooks/config.toml (or $GITHOOKS_CONFIG)
//   - Default values
//
// # Keys
//
//	hooks_dir     = "githooks"  # relative to the work tree root
//	timeout       = "5m"        # default per-entry timeout
//	output        = "buffer"    # or "stream"
//	theme         = "default"   # or "none"
//	history_limit = 50          # 0 disables the run journal
//
//	[types.pre-push]
//	timeout = "15m"             # per-hook-type default
//
//	[entries."pre-commit/01-warn"]
//	fatal   = false             # advisory: failure is reported, never blocks
//	enabled = true
//	timeout = "30s"
//
// Entry keys are "<hook>/<file name>", matching the script's path below the
// hooks directory. Unknown keys, unknown hook types, malformed durations and
// out-of-range values are rejected with a [*ConfigError] before any hook runs.
package config
