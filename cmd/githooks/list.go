package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
	"github.com/palotasb/githooks/internal/report"
	"github.com/palotasb/githooks/internal/shim"
)

var listHeaders = []string{"HOOK", "ENTRY", "ENABLED", "FATAL", "TIMEOUT", "SHIM"}

func runList(cmd *cobra.Command, args []string, opts repoOptions, all bool) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)

	repo, err := discoverRepo(ctx, opts)
	if err != nil {
		return err
	}
	cfg, err := effectiveConfig(ctx, repo.Root)
	if err != nil {
		return err
	}
	hooksRoot := cfg.HooksRoot(repo.Root)

	types := args
	if len(types) > 0 {
		for _, hook := range types {
			if err := validateHook(hook); err != nil {
				return err
			}
		}
	} else {
		known, _, err := hooks.Types(hooksRoot)
		if err != nil {
			return err
		}
		types = known
	}

	var rows [][]string
	for _, hook := range types {
		scripts, err := hooks.Scan(hooksRoot, hook)
		if err != nil {
			return err
		}
		st, err := shim.Inspect(repo.HooksPath, hook)
		if err != nil {
			return err
		}
		for _, s := range scripts {
			if !s.Executable && !all {
				continue
			}
			rows = append(rows, listRow(s, st, cfg))
		}
	}

	if len(rows) == 0 {
		l.Printf("No hook scripts found in %s\n", hooksRoot)
		return nil
	}

	output.FromContext(ctx).Table(listHeaders, rows)
	return nil
}

// listRow renders one script. Non-executable files never run, so their
// policy columns are left blank.
func listRow(s hooks.Script, st shim.Status, cfg *config.Config) []string {
	if !s.Executable {
		return []string{s.Hook, s.Name, "skipped (not executable)", "-", "-", st.State.String()}
	}
	p := hooks.ResolvePolicy(s.Hook, s.Name, cfg)
	return []string{
		s.Hook,
		s.Name,
		strconv.FormatBool(p.Enabled),
		fatalString(p.Fatal),
		report.TimeoutString(p.Timeout),
		st.State.String(),
	}
}

func fatalString(fatal bool) string {
	if fatal {
		return "yes"
	}
	return "no (advisory)"
}
