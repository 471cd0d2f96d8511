package main

import (
	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage githooks configuration.

Global config: ~/.config/githooks/config.toml (or $GITHOOKS_CONFIG)
Local config:  .githooks.toml at the repository root (.githooks.yaml also accepted)`,
		Example: `  githooks config init          # Create default global config
  githooks config init --local  # Create local repo config
  githooks config show          # Show effective config
  githooks config path          # Show which files are read`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
		repo   repoOptions
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config.
With --local, creates .githooks.toml at the root of the current repository.`,
		Example: `  githooks config init           # Create global config
  githooks config init --local   # Create local repo config
  githooks config init -f        # Overwrite existing config
  githooks config init -s        # Print config to stdout`,
		Annotations: map[string]string{annotationNoGit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				return initLocalConfig(cmd, repo, force, stdout)
			}
			return initGlobalConfig(cmd, force, stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .githooks.toml instead of global config")
	addRepoFlags(cmd, &repo)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		global bool
		repo   repoOptions
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration as TOML.

Inside a repository this is the global config with the local config and
GITHOOKS_* environment variables applied. Outside a repository, or with
--global, only the global config is shown.`,
		Annotations: map[string]string{annotationNoGit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, repo, global)
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Ignore local config and environment")
	addRepoFlags(cmd, &repo)

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	var repo repoOptions

	cmd := &cobra.Command{
		Use:         "path",
		Short:       "Show config file locations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoGit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			globalPath, err := config.GlobalPath()
			if err != nil {
				return err
			}
			out.Printf("global: %s\n", globalPath)

			if r, err := discoverRepo(ctx, repo); err == nil {
				out.Printf("local:  %s\n", config.LocalPath(r.Root))
			}
			return nil
		},
	}

	addRepoFlags(cmd, &repo)

	return cmd
}

// insideRepo reports whether opts points into a git work tree.
func insideRepo(cmd *cobra.Command, opts repoOptions) (*git.Repo, bool) {
	if git.CheckGit() != nil {
		return nil, false
	}
	r, err := discoverRepo(cmd.Context(), opts)
	if err != nil {
		return nil, false
	}
	return r, true
}
