package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
	"github.com/palotasb/githooks/internal/shim"
	"github.com/palotasb/githooks/internal/ui/prompt"
)

// defaultInstallHook is installed when the hooks root has no hook directories yet.
const defaultInstallHook = "pre-commit"

func runInstall(cmd *cobra.Command, args []string, opts repoOptions, force bool) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	repo, err := discoverRepo(ctx, opts)
	if err != nil {
		return err
	}

	targets, err := installTargets(cmd, repo, args)
	if err != nil {
		return err
	}

	l.Debug("installing shims", "hooksPath", repo.HooksPath, "hooks", targets)

	var errs []error
	for _, hook := range targets {
		backedUp, err := shim.Install(repo.HooksPath, hook, force)
		if errors.Is(err, shim.ErrForeignHook) && canPrompt(cmd) {
			backedUp, err = confirmReplace(cmd, repo, hook)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if backedUp {
			l.Printf("Backed up existing %s hook to %s%s\n", hook, hook, shim.BackupSuffix)
		}
		out.Printf("Installed %s\n", shimPath(repo, hook))
	}
	return errors.Join(errs...)
}

// installTargets returns the hook types to install: args when given,
// otherwise every hook directory in the hooks root.
func installTargets(cmd *cobra.Command, repo *git.Repo, args []string) ([]string, error) {
	if len(args) > 0 {
		for _, hook := range args {
			if err := validateHook(hook); err != nil {
				return nil, err
			}
		}
		return args, nil
	}

	cfg, err := effectiveConfig(cmd.Context(), repo.Root)
	if err != nil {
		return nil, err
	}
	known, unknown, err := hooks.Types(cfg.HooksRoot(repo.Root))
	if err != nil {
		return nil, err
	}
	for _, name := range unknown {
		log.FromContext(cmd.Context()).Warnf("ignoring %s: not a git hook type", name)
	}
	if len(known) == 0 {
		return []string{defaultInstallHook}, nil
	}
	return known, nil
}

func runUninstall(cmd *cobra.Command, args []string, opts repoOptions) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	repo, err := discoverRepo(ctx, opts)
	if err != nil {
		return err
	}

	explicit := len(args) > 0
	targets := args
	if explicit {
		for _, hook := range targets {
			if err := validateHook(hook); err != nil {
				return err
			}
		}
	} else {
		targets = git.HookNames
	}

	var errs []error
	removedAny := false
	for _, hook := range targets {
		removed, restored, err := shim.Uninstall(repo.HooksPath, hook)
		if err != nil {
			// Foreign hooks only matter when the user named them.
			if errors.Is(err, shim.ErrForeignHook) && !explicit {
				continue
			}
			errs = append(errs, err)
			continue
		}
		if !removed {
			if explicit {
				l.Printf("No githooks shim installed for %s\n", hook)
			}
			continue
		}
		removedAny = true
		out.Printf("Removed %s\n", shimPath(repo, hook))
		if restored {
			l.Printf("Restored previous %s hook\n", hook)
		}
	}

	if !explicit && !removedAny && len(errs) == 0 {
		l.Println("No githooks shims installed")
	}
	return errors.Join(errs...)
}

// canPrompt reports whether the user can answer questions interactively.
func canPrompt(cmd *cobra.Command) bool {
	return isTerminal(cmd.InOrStdin()) && isTerminal(cmd.ErrOrStderr())
}

// confirmReplace asks before backing up and replacing a foreign hook.
func confirmReplace(cmd *cobra.Command, repo *git.Repo, hook string) (bool, error) {
	question := fmt.Sprintf("%s is not a githooks shim. Back it up and replace it?", shimPath(repo, hook))
	res, err := prompt.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question)
	if err != nil {
		return false, err
	}
	if !res.Confirmed {
		return false, fmt.Errorf("%s: %w", shimPath(repo, hook), shim.ErrForeignHook)
	}
	return shim.Install(repo.HooksPath, hook, true)
}

func shimPath(repo *git.Repo, hook string) string {
	return filepath.Join(repo.HooksPath, hook)
}
