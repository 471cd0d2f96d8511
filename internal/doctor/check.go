package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/history"
	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/shim"
	"github.com/palotasb/githooks/internal/storage"
)

// Check runs every diagnostic against t. It never modifies anything.
func Check(ctx context.Context, t Target) *Result {
	res := &Result{}
	if t.Repo != nil {
		log.FromContext(ctx).Debug("diagnosing", "root", t.Repo.Root, "hooksPath", t.Repo.HooksPath)
	}

	if !checkEnvironment(t, res) {
		return res
	}
	checkConfig(t, res)
	if t.Repo == nil {
		return res
	}

	known := checkHooksRoot(t, res)
	checkHooksPath(ctx, t, res)
	checkShims(t, known, res)
	checkHistory(t, res)
	return res
}

// checkEnvironment reports whether later checks can run.
func checkEnvironment(t Target, res *Result) bool {
	if err := git.CheckGit(); err != nil {
		res.add(Issue{
			Category:    CategoryEnvironment,
			Severity:    SeverityError,
			Key:         "git",
			Description: err.Error(),
		})
		return false
	}
	res.pass(CategoryEnvironment, "git is available")

	if t.Repo == nil {
		desc := "not inside a git work tree"
		if t.RepoErr != nil {
			desc = t.RepoErr.Error()
		}
		res.add(Issue{
			Category:    CategoryEnvironment,
			Severity:    SeverityWarning,
			Key:         "repository",
			Description: desc,
			Hint:        "run doctor inside a repository to check its hooks",
		})
		return true
	}
	res.pass(CategoryEnvironment, fmt.Sprintf("repository at %s", t.Repo.Root))
	return true
}

func checkConfig(t Target, res *Result) {
	if t.ConfigErr != nil {
		res.add(Issue{
			Category:    CategoryConfig,
			Severity:    SeverityError,
			Key:         "config",
			Description: t.ConfigErr.Error(),
			Hint:        "hook runs fail until the config is fixed",
		})
		return
	}
	res.pass(CategoryConfig, "config is valid")

	if t.Config != nil && t.Config.Disabled {
		res.add(Issue{
			Category:    CategoryConfig,
			Severity:    SeverityWarning,
			Key:         "GITHOOKS",
			Description: "githooks is disabled by the environment; no scripts run",
			Hint:        "unset GITHOOKS to re-enable",
		})
	}
}

// checkHooksRoot inspects the hooks root and returns the hook types that
// have a directory in it.
func checkHooksRoot(t Target, res *Result) []string {
	root := t.Config.HooksRoot(t.Repo.Root)

	known, unknown, err := hooks.Types(root)
	if err != nil {
		res.add(Issue{
			Category:    CategoryHooks,
			Severity:    SeverityError,
			Key:         root,
			Description: err.Error(),
		})
		return nil
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		res.add(Issue{
			Category:    CategoryHooks,
			Severity:    SeverityWarning,
			Key:         root,
			Description: "hooks root does not exist",
			Hint:        fmt.Sprintf("create %s/<hook>/ and add executable scripts", filepath.Base(root)),
		})
		return nil
	}
	res.pass(CategoryHooks, fmt.Sprintf("hooks root at %s", root))

	for _, name := range unknown {
		hint := "git never runs hooks of this type"
		if s := git.SuggestHook(name); s != "" {
			hint = fmt.Sprintf("did you mean %q?", s)
		}
		res.add(Issue{
			Category:    CategoryHooks,
			Severity:    SeverityWarning,
			Key:         name,
			Description: "directory is not a git hook type",
			Hint:        hint,
		})
	}

	for _, hook := range known {
		scripts, err := hooks.Scan(root, hook)
		if err != nil {
			res.add(Issue{
				Category:    CategoryHooks,
				Severity:    SeverityError,
				Key:         hook,
				Description: err.Error(),
			})
			continue
		}
		executable := 0
		for _, s := range scripts {
			if s.Executable {
				executable++
				continue
			}
			res.add(Issue{
				Category:    CategoryHooks,
				Severity:    SeverityWarning,
				Key:         hook + "/" + s.Name,
				Description: "not executable, skipped",
				Hint:        "chmod +x it to run it",
			})
		}
		if executable == 0 {
			res.add(Issue{
				Category:    CategoryHooks,
				Severity:    SeverityWarning,
				Key:         hook,
				Description: "no executable scripts",
			})
			continue
		}
		res.pass(CategoryHooks, fmt.Sprintf("%s: %d script(s)", hook, executable))
	}
	return known
}

// checkHooksPath notes a core.hooksPath override, since shims then live
// outside .git and other tools may own that directory.
func checkHooksPath(ctx context.Context, t Target, res *Result) {
	val, err := git.ConfigValue(ctx, t.Repo.Root, "core.hooksPath")
	if err != nil {
		res.add(Issue{
			Category:    CategoryShims,
			Severity:    SeverityWarning,
			Key:         "core.hooksPath",
			Description: err.Error(),
		})
		return
	}
	if val != "" {
		res.pass(CategoryShims, fmt.Sprintf("core.hooksPath is %s; shims go to %s", val, t.Repo.HooksPath))
	}
}

func checkShims(t Target, known []string, res *Result) {
	for _, hook := range known {
		st, err := shim.Inspect(t.Repo.HooksPath, hook)
		if err != nil {
			res.add(Issue{
				Category:    CategoryShims,
				Severity:    SeverityError,
				Key:         hook,
				Description: err.Error(),
			})
			continue
		}

		switch st.State {
		case shim.StateMissing:
			res.add(Issue{
				Category:    CategoryShims,
				Severity:    SeverityError,
				Key:         hook,
				Description: "shim not installed; git will not run these scripts",
				FixAction:   FixInstallShim,
			})
		case shim.StateForeign:
			res.add(Issue{
				Category:    CategoryShims,
				Severity:    SeverityError,
				Key:         hook,
				Description: fmt.Sprintf("%s is not a githooks shim", st.Path),
				Hint:        fmt.Sprintf("githooks install --force %s", hook),
			})
		case shim.StateShim:
			if shimOutdated(st.Path, hook) {
				res.add(Issue{
					Category:    CategoryShims,
					Severity:    SeverityWarning,
					Key:         hook,
					Description: "shim differs from the current version",
					FixAction:   FixReinstallShim,
				})
				continue
			}
			res.pass(CategoryShims, fmt.Sprintf("%s shim installed", hook))
		}
	}
}

func shimOutdated(path, hook string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return string(data) != shim.Script(hook)
}

func checkHistory(t Target, res *Result) {
	path := history.Path(t.Repo.GitDir)
	var h history.History
	err := storage.LoadJSON(path, &h)
	switch {
	case err == nil:
		res.pass(CategoryHistory, fmt.Sprintf("%d run(s) recorded", len(h.Records)))
	case errors.Is(err, fs.ErrNotExist):
		// nothing recorded yet
	default:
		res.add(Issue{
			Category:    CategoryHistory,
			Severity:    SeverityWarning,
			Key:         path,
			Description: fmt.Sprintf("history is unreadable: %v", err),
			FixAction:   FixResetHistory,
		})
	}
}
