// Package git provides the git queries githooks needs, via the git CLI.
//
// All operations shell out to git rather than using a Go git library, so that
// repository layout quirks (worktrees, GIT_DIR, core.hooksPath, includeIf) are
// resolved exactly the way git resolves them when it fires a hook.
//
// # Repository Discovery
//
//   - [Discover]: work tree root, absolute git dir and the hooks path git uses
//   - [CheckGit]: verify git is on PATH
//
// # Hook Catalogue
//
//   - [HookNames]: every hook type git can invoke
//   - [IsHook]: membership test used by the locator and config validation
//   - [SuggestHook]: fuzzy "did you mean" for mistyped hook names
package git
