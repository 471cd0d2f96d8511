package git

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// HookNames lists every hook type git can invoke, in githooks(5) order.
var HookNames = []string{
	"applypatch-msg",
	"pre-applypatch",
	"post-applypatch",
	"pre-commit",
	"pre-merge-commit",
	"prepare-commit-msg",
	"commit-msg",
	"post-commit",
	"pre-rebase",
	"post-checkout",
	"post-merge",
	"pre-push",
	"pre-receive",
	"update",
	"proc-receive",
	"post-receive",
	"post-update",
	"reference-transaction",
	"push-to-checkout",
	"pre-auto-gc",
	"post-rewrite",
	"sendemail-validate",
	"fsmonitor-watchman",
	"p4-changelist",
	"p4-prepare-changelist",
	"p4-post-changelist",
	"p4-pre-submit",
	"post-index-change",
}

// IsHook reports whether name is a hook type git knows about.
func IsHook(name string) bool {
	return slices.Contains(HookNames, name)
}

// SuggestHook returns the closest known hook name for a mistyped one,
// or "" when nothing resembles it.
func SuggestHook(name string) string {
	if name == "" || IsHook(name) {
		return ""
	}
	matches := fuzzy.Find(name, HookNames)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
