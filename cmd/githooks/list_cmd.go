package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		repo repoOptions
		all  bool
	)

	cmd := &cobra.Command{
		Use:               "list [hook...]",
		Short:             "List hook scripts and their policy",
		Aliases:           []string{"ls"},
		GroupID:           GroupInspect,
		ValidArgsFunction: completeHookNames,
		Long: `List the scripts that would run for each hook type, in run order, with
the policy that applies to them and whether the shim is installed.

Nothing is executed. Without arguments, every hook directory in the
hooks root is listed.`,
		Example: `  githooks list                  # All hook types
  githooks list pre-commit
  githooks list --all            # Include non-executable files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, repo, all)
		},
	}

	addRepoFlags(cmd, &repo)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also show files that are skipped because they are not executable")

	return cmd
}
