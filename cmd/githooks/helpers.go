package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
)

// repoOptions selects the repository a command works on.
type repoOptions struct {
	dir    string
	gitDir string
}

// addRepoFlags registers -C and --git-dir on cmd.
func addRepoFlags(cmd *cobra.Command, opts *repoOptions) {
	cmd.Flags().StringVarP(&opts.dir, "dir", "C", "", "Run as if started in this directory")
	cmd.Flags().StringVar(&opts.gitDir, "git-dir", "", "Path to the git directory (default: $GIT_DIR or discovered)")
	cmd.MarkFlagDirname("dir")
	cmd.MarkFlagDirname("git-dir")
}

// discoverRepo resolves the repository selected by opts.
func discoverRepo(ctx context.Context, opts repoOptions) (*git.Repo, error) {
	return git.Discover(ctx, git.DiscoverOptions{Dir: opts.dir, GitDir: opts.gitDir})
}

// effectiveConfig returns the config for repoRoot: defaults, global file,
// local file and environment, in that order. A broken global config
// surfaces here rather than at startup.
func effectiveConfig(ctx context.Context, repoRoot string) (*config.Config, error) {
	if globalConfigErr != nil {
		return nil, globalConfigErr
	}
	r := config.ResolverFromContext(ctx)
	if r == nil {
		global := config.Default()
		r = config.NewResolver(&global, os.Getenv)
	}
	return r.ConfigForRepo(repoRoot)
}

// getenv returns the environment lookup of the resolver on ctx.
func getenv(ctx context.Context) func(string) string {
	if r := config.ResolverFromContext(ctx); r != nil {
		return r.Getenv
	}
	return os.Getenv
}

// globalConfig returns the global config without repository overrides.
func globalConfig(ctx context.Context) (*config.Config, error) {
	if globalConfigErr != nil {
		return nil, globalConfigErr
	}
	if r := config.ResolverFromContext(ctx); r != nil {
		return r.Global(), nil
	}
	global := config.Default()
	return &global, nil
}

// validateHook checks that name is a hook type git knows.
func validateHook(name string) error {
	if git.IsHook(name) {
		return nil
	}
	if s := git.SuggestHook(name); s != "" {
		return fmt.Errorf("unknown hook %q (did you mean %q?)", name, s)
	}
	return fmt.Errorf("unknown hook %q", name)
}

// readStdinIfPiped reads r to EOF unless it is an interactive terminal,
// which git never hands to a hook.
func readStdinIfPiped(r io.Reader) ([]byte, error) {
	if f, ok := r.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return nil, nil
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// isTerminal reports whether stream, either end of stdio, is an
// interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// completeHookNames completes hook type names for every positional argument.
func completeHookNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		seen[a] = true
	}
	var out []string
	for _, name := range git.HookNames {
		if !seen[name] && strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFirstHookName completes the hook type only; later arguments
// belong to git.
func completeFirstHookName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return completeHookNames(cmd, args, toComplete)
}
