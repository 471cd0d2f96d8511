package main

import (
	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/doctor"
	"github.com/palotasb/githooks/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var (
		repo repoOptions
		fix  bool
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair the hook setup",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the githooks setup of the current repository.

Checks:
- git is installed
- global and local config files are valid
- the hooks root exists and only holds git hook types
- scripts in hook directories are executable
- a shim is installed for every hook directory
- the run history is readable

Examples:
  githooks doctor          # Check for issues
  githooks doctor --fix    # Install missing shims and repair what is safe`,
		Annotations: map[string]string{annotationNoGit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var t doctor.Target
			if r, err := discoverRepo(ctx, repo); err == nil {
				t.Repo = r
				t.Config, t.ConfigErr = effectiveConfig(ctx, r.Root)
			} else {
				t.RepoErr = err
				t.Config, t.ConfigErr = globalConfig(ctx)
			}
			if t.Config == nil {
				fallback := config.Default()
				t.Config = &fallback
			}

			if errs := doctor.Run(ctx, output.FromContext(ctx).Writer(), t, fix); errs > 0 {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}

	addRepoFlags(cmd, &repo)
	cmd.Flags().BoolVar(&fix, "fix", false, "Repair fixable issues")

	return cmd
}
