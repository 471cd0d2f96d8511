package config

const defaultGlobalConfig = `# githooks global configuration
# Location: ~/.config/githooks/config.toml (override with GITHOOKS_CONFIG)
# Per-repo settings in .githooks.toml take precedence over this file.

# Hooks root, relative to the work tree root. One subdirectory per hook type,
# e.g. githooks/pre-commit/01-format. Only executable files are run.
# hooks_dir = "githooks"

# Default per-entry timeout. Entries still running after this are killed
# and reported as timed out.
# timeout = "5m"

# How script output is shown:
#   "buffer" - captured and printed after each script (failures always shown)
#   "stream" - passed through live while the script runs
# output = "buffer"

# Color theme: "default", "dracula", "nord" or "none"
# theme = "default"

# Number of runs kept in .git/githooks/history.json (0 disables)
# history_limit = 50

# Per-hook-type defaults
# [types.pre-push]
# timeout = "15m"
#
# [types.post-checkout]
# enabled = false
`

const defaultLocalConfig = `# githooks per-repo configuration
# Commit this file; it applies to everyone working on the repository.

# hooks_dir = "githooks"
# timeout = "5m"
# output = "buffer"

# [types.pre-push]
# timeout = "15m"

# Per-entry policy. Keys are "<hook>/<file name>".
#
# [entries."pre-commit/01-warn"]
# fatal = false        # advisory: failures are reported but never block
#
# [entries."pre-commit/05-slow-check"]
# timeout = "30s"
#
# [entries."pre-push/90-experimental"]
# enabled = false
`

// DefaultGlobalConfig returns the global configuration template.
func DefaultGlobalConfig() string {
	return defaultGlobalConfig
}

// DefaultLocalConfig returns the per-repo configuration template.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
