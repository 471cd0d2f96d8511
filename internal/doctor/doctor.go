package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/palotasb/githooks/internal/ui/styles"
)

var categoryNames = map[IssueCategory]string{
	CategoryEnvironment: "Environment",
	CategoryConfig:      "Configuration",
	CategoryHooks:       "Hook scripts",
	CategoryShims:       "Shims",
	CategoryHistory:     "History",
}

// Run checks t, prints the findings to w and applies fixes when fix is set.
// It returns the number of errors left unresolved.
func Run(ctx context.Context, w io.Writer, t Target, fix bool) int {
	res := Check(ctx, t)
	Print(w, res)

	if len(res.Issues) == 0 {
		fmt.Fprintln(w, "\n"+styles.SuccessStyle.Render(styles.SymbolPassed+" No issues found"))
		return 0
	}

	errs := res.Errors()
	fixable := 0
	for _, is := range res.Issues {
		if is.FixAction != FixNone {
			fixable++
		}
	}

	fmt.Fprintf(w, "\nFound %d issue(s), %d error(s).\n", len(res.Issues), errs)
	if fixable == 0 {
		return errs
	}

	if !fix {
		fmt.Fprintf(w, "Run 'githooks doctor --fix' to repair %d of them.\n", fixable)
		return errs
	}

	fmt.Fprintln(w, "\nFixing:")
	failed := Fix(w, t, res.Issues)

	// Fixed errors no longer count.
	remaining := 0
	for _, is := range res.Issues {
		if is.Severity == SeverityError && is.FixAction == FixNone {
			remaining++
		}
	}
	return remaining + failed
}

// Print writes the passed checks and issues grouped by category.
func Print(w io.Writer, res *Result) {
	for _, cat := range categoryOrder {
		var lines []string
		for _, c := range res.Passed {
			if c.Category == cat {
				lines = append(lines, styles.SuccessStyle.Render(styles.SymbolPassed)+" "+c.Message)
			}
		}
		for _, is := range res.Issues {
			if is.Category == cat {
				lines = append(lines, issueLine(is))
			}
		}
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s:\n", styles.Bold.Render(categoryNames[cat]))
		for _, line := range lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func issueLine(is Issue) string {
	sym := styles.WarningStyle.Render(styles.SymbolWarning)
	if is.Severity == SeverityError {
		sym = styles.ErrorStyle.Render(styles.SymbolFailed)
	}
	line := fmt.Sprintf("%s %s: %s", sym, is.Key, is.Description)
	switch {
	case is.FixAction != FixNone:
		line += styles.MutedStyle.Render(" (fixable)")
	case is.Hint != "":
		line += styles.MutedStyle.Render(" (" + is.Hint + ")")
	}
	return line
}
