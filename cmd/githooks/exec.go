package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/history"
	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
	"github.com/palotasb/githooks/internal/report"
	"github.com/palotasb/githooks/internal/ui/styles"
)

func runExec(cmd *cobra.Command, hook string, gitArgs []string, opts execOptions) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)

	// Newer git versions may fire hooks this build does not know about;
	// that must never block the user.
	if err := validateHook(hook); err != nil {
		l.Warnf("%v, nothing to run", err)
		return nil
	}

	if config.DisabledByEnv(getenv(ctx)) {
		l.Debug("githooks disabled by environment", "var", config.EnvEnabled)
		return nil
	}

	repo, err := discoverRepo(ctx, opts.repo)
	if errors.Is(err, git.ErrBareRepository) {
		l.Debug("bare repository, nothing to run", "hook", hook)
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := effectiveConfig(ctx, repo.Root)
	if err != nil {
		return err
	}
	cfg = applyExecFlags(cfg, opts)
	styles.Init(cfg.Theme)

	hooksRoot := cfg.HooksRoot(repo.Root)
	l.Debug("resolved repository", "root", repo.Root, "gitDir", repo.GitDir, "hooksRoot", hooksRoot)

	entries, err := hooks.Plan(hooksRoot, hook, cfg)
	if err != nil {
		return err
	}

	if opts.dryRun {
		output.FromContext(ctx).Print(report.RenderPlan(hook, entries))
		return nil
	}

	stdin, err := readStdinIfPiped(cmd.InOrStdin())
	if err != nil {
		return err
	}

	inv := hooks.Invocation{
		Hook:      hook,
		Args:      gitArgs,
		Stdin:     stdin,
		RepoRoot:  repo.Root,
		HooksRoot: hooksRoot,
	}

	stream := cfg.Output == config.OutputStream
	stderr := cmd.ErrOrStderr()
	reporter := report.New(output.Downsample(stderr, os.Environ(), cfg.Theme == config.ThemeNone), report.Options{
		Verbose:    l.IsVerbose(),
		Quiet:      quiet,
		Stream:     stream,
		Spinner:    !stream && !quiet && isTerminal(stderr),
		SpinnerOut: stderr,
	})

	runner := &hooks.Runner{
		Executor: &hooks.ProcessExecutor{Interactive: isTerminal(stderr)},
		Observer: reporter,
		Stream:   stream,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   stderr,
	}

	res := runner.Run(ctx, inv, entries)
	reporter.Summary(res)

	if !opts.noHistory {
		recordHistory(cmd, repo, cfg, res, gitArgs)
	}

	if code := report.ExitCode(res); code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}

// applyExecFlags layers command-line overrides on top of cfg.
func applyExecFlags(cfg *config.Config, opts execOptions) *config.Config {
	if opts.hooksDir == "" && !opts.stream {
		return cfg
	}
	out := cfg.Clone()
	if opts.hooksDir != "" {
		out.HooksDir = opts.hooksDir
	}
	if opts.stream {
		out.Output = config.OutputStream
	}
	return out
}

// recordHistory appends the run to the journal. Failures are logged only;
// they never change the verdict.
func recordHistory(cmd *cobra.Command, repo *git.Repo, cfg *config.Config, res hooks.RunResult, gitArgs []string) {
	if cfg.HistoryLimit <= 0 || res.Planned == 0 {
		return
	}
	l := log.FromContext(cmd.Context())
	path := history.Path(repo.GitDir)
	if err := history.Append(path, history.FromResult(res, gitArgs), cfg.HistoryLimit); err != nil {
		l.Warnf("failed to record run history: %v", err)
		return
	}
	l.Debug("recorded run", "path", path)
}
