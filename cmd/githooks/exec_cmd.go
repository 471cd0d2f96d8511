package main

import (
	"github.com/spf13/cobra"
)

// execOptions holds the flags of the exec command.
type execOptions struct {
	repo      repoOptions
	dryRun    bool
	stream    bool
	hooksDir  string
	noHistory bool
}

func newExecCmd() *cobra.Command {
	var opts execOptions

	cmd := &cobra.Command{
		Use:               "exec <hook> [args...]",
		Short:             "Run the scripts for a git hook",
		Aliases:           []string{"run"},
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeFirstHookName,
		Long: `Run every executable script in <hooks dir>/<hook>/ in filename order.

This is what the installed shims call. Arguments after the hook name and
stdin are passed to every script unchanged. The exit status is 1 when a
fatal script fails, times out, cannot start, or the run is interrupted;
advisory failures are reported but let git proceed.`,
		Example: `  githooks exec pre-commit                    # What the pre-commit shim runs
  githooks exec commit-msg .git/COMMIT_EDITMSG
  githooks exec --dry-run pre-push            # Show what would run
  GITHOOKS_SKIP=02-lint githooks exec pre-commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0], args[1:], opts)
		},
	}

	// Everything after the hook name belongs to git.
	cmd.Flags().SetInterspersed(false)

	addRepoFlags(cmd, &opts.repo)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the plan without running anything")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "Show script output live instead of after each script")
	cmd.Flags().StringVar(&opts.hooksDir, "hooks-dir", "", "Hooks root, relative to the repository root")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this run")
	cmd.MarkFlagDirname("hooks-dir")

	return cmd
}
