package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/history"
	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
	"github.com/palotasb/githooks/internal/report"
	"github.com/palotasb/githooks/internal/ui/styles"
)

var historyHeaders = []string{"ID", "STARTED", "HOOK", "VERDICT", "DURATION", "ENTRIES"}

func newHistoryCmd() *cobra.Command {
	var (
		repo  repoOptions
		limit int
		hook  string
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recent hook runs",
		GroupID: GroupInspect,
		Args:    cobra.NoArgs,
		Long: `Show recent hook runs of this repository, newest first.

Runs are recorded under the git directory, so they are never committed.
The number of runs kept is set by history_limit.`,
		Example: `  githooks history                 # Last 10 runs
  githooks history -n 50
  githooks history --hook pre-push`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if hook != "" {
				if err := validateHook(hook); err != nil {
					return err
				}
			}

			r, err := discoverRepo(ctx, repo)
			if err != nil {
				return err
			}

			h, err := history.Load(history.Path(r.GitDir))
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			records := h.Recent(limit, hook)
			if len(records) == 0 {
				l.Println("No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, historyRow(rec))
			}
			output.FromContext(ctx).Table(historyHeaders, rows)
			return nil
		},
	}

	addRepoFlags(cmd, &repo)
	cmd.Flags().IntVarP(&limit, "number", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&hook, "hook", "", "Only show runs of this hook type")
	cmd.RegisterFlagCompletionFunc("hook", completeHookNames)

	return cmd
}

func historyRow(rec history.Record) []string {
	id := rec.ID
	if len(id) > 8 {
		id = id[:8]
	}

	entries := make([]string, 0, len(rec.Entries)+len(rec.Disabled))
	for _, e := range rec.Entries {
		entries = append(entries, styles.StatusSymbol(hooks.Status(e.Status), e.Fatal)+" "+e.Name)
	}
	for _, name := range rec.Disabled {
		entries = append(entries, styles.SymbolSkipped+" "+name)
	}

	return []string{
		id,
		rec.Started.Local().Format(time.DateTime),
		rec.Hook,
		styles.VerdictStyle(hooks.Verdict(rec.Verdict)).Render(rec.Verdict),
		report.FormatDuration(rec.Duration()),
		strings.Join(entries, " "),
	}
}
