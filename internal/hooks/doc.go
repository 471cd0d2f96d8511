// Package hooks discovers and runs the scripts behind a git hook.
//
// A hooks root (by default "githooks" at the top of the work tree) holds one
// subdirectory per hook type. Every regular, executable file inside such a
// subdirectory is an entry:
//
//	githooks/
//	  pre-commit/
//	    01-format
//	    02-lint
//	  commit-msg/
//	    check-subject
//
// # Discovery
//
// [Locate] lists the entries for one hook type in byte-wise filename order.
// Non-executable files and dotfiles are ignored so drafts can live next to
// active scripts. A missing hooks root or hook subdirectory yields no entries;
// an unreadable hooks root is a [*DiscoveryError].
//
// # Policy
//
// [ResolvePolicy] decides whether an entry runs, how long it may take and
// whether its failure blocks git. Settings come from the built-in defaults,
// then the hook type, then the entry, then GITHOOKS_SKIP.
//
// # Execution
//
// [Runner.Run] executes the entries one at a time in the repository root,
// forwarding git's arguments and stdin unchanged. A failing fatal entry stops
// the run; a failing advisory entry is logged and the run continues. The
// result is a [RunResult] whose [Verdict] maps to the exit code git sees.
package hooks
