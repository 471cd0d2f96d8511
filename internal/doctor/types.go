package doctor

import (
	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
)

// IssueCategory groups issues by type.
type IssueCategory string

const (
	CategoryEnvironment IssueCategory = "environment"
	CategoryConfig      IssueCategory = "config"
	CategoryHooks       IssueCategory = "hooks"
	CategoryShims       IssueCategory = "shims"
	CategoryHistory     IssueCategory = "history"
)

// categoryOrder is the order categories are checked and printed in.
var categoryOrder = []IssueCategory{
	CategoryEnvironment,
	CategoryConfig,
	CategoryHooks,
	CategoryShims,
	CategoryHistory,
}

// Severity tells whether an issue breaks hook runs.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// FixAction names what --fix does about an issue. Empty means manual.
type FixAction string

const (
	FixNone          FixAction = ""
	FixInstallShim   FixAction = "install_shim"
	FixReinstallShim FixAction = "reinstall_shim"
	FixResetHistory  FixAction = "reset_history"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Category    IssueCategory
	Severity    Severity
	Key         string // hook type, path or check name
	Description string // human-readable description
	Hint        string // manual remedy, shown when FixAction is empty
	FixAction   FixAction
}

// Target is the setup under diagnosis. Repo is nil outside a work tree;
// Config then holds the global config.
type Target struct {
	Repo      *git.Repo
	RepoErr   error
	Config    *config.Config
	ConfigErr error
}

// Result lists what was checked and what is wrong.
type Result struct {
	Passed []Check
	Issues []Issue
}

// Check is a passed check, printed as a ✓ line.
type Check struct {
	Category IssueCategory
	Message  string
}

// Errors returns the number of error-severity issues.
func (r *Result) Errors() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (r *Result) pass(cat IssueCategory, msg string) {
	r.Passed = append(r.Passed, Check{Category: cat, Message: msg})
}

func (r *Result) add(is Issue) {
	r.Issues = append(r.Issues, is)
}
