// Package doctor diagnoses a repository's githooks setup and optionally
// repairs what can be repaired safely.
//
// Checks are grouped into categories:
//
//   - [CategoryEnvironment]: git availability and the repository itself.
//   - [CategoryConfig]: global and per-repo config files.
//   - [CategoryHooks]: the hooks root and the scripts inside it.
//   - [CategoryShims]: the shims in git's hook slots.
//   - [CategoryHistory]: the run journal under the git directory.
//
// Each [Issue] carries a severity and, when --fix can repair it, a
// [FixAction]. Only errors make the diagnosis fail; warnings point at
// setups that work but probably do not do what the user expects.
package doctor
