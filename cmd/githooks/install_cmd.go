package main

import (
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var (
		repo  repoOptions
		force bool
	)

	cmd := &cobra.Command{
		Use:               "install [hook...]",
		Short:             "Install shims into git's hook slots",
		GroupID:           GroupCore,
		ValidArgsFunction: completeHookNames,
		Long: `Install a small shim for each hook type that calls 'githooks exec <hook>'.

Without arguments, installs a shim for every hook type that has a
directory in the hooks root, or pre-commit when there is none yet.
Shims go where git looks for hooks, so core.hooksPath is honoured.

An existing hook that githooks did not write is left alone unless
--force is given; it is then moved to <hook>.githooks.bak first. On a
terminal, install asks before doing so.`,
		Example: `  githooks install                   # One shim per hook directory
  githooks install pre-commit pre-push
  githooks install --force commit-msg  # Replace a hand-written hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, repo, force)
		},
	}

	addRepoFlags(cmd, &repo)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Back up and replace hooks not written by githooks")

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var repo repoOptions

	cmd := &cobra.Command{
		Use:               "uninstall [hook...]",
		Short:             "Remove installed shims",
		GroupID:           GroupCore,
		ValidArgsFunction: completeHookNames,
		Long: `Remove githooks shims from git's hook slots and restore any hook that
a forced install backed up.

Without arguments, every githooks shim is removed. Hooks written by
someone else are never touched.`,
		Example: `  githooks uninstall               # Remove all shims
  githooks uninstall pre-push`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, args, repo)
		},
	}

	addRepoFlags(cmd, &repo)

	return cmd
}
