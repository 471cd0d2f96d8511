package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/palotasb/githooks/internal/shim"
)

// Fix applies the fix action of every fixable issue and reports each
// result to w. It returns the number of fixes that failed.
func Fix(w io.Writer, t Target, issues []Issue) int {
	var failed int

	for _, is := range issues {
		var err error
		switch is.FixAction {
		case FixNone:
			continue
		case FixInstallShim, FixReinstallShim:
			// Fixable shim issues are never foreign, so force is not needed.
			_, err = shim.Install(t.Repo.HooksPath, is.Key, false)
		case FixResetHistory:
			err = os.Remove(is.Key)
		default:
			err = fmt.Errorf("unknown fix action %q", is.FixAction)
		}

		if err != nil {
			fmt.Fprintf(w, "  ✗ %s: %v\n", is.Key, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "  ✓ %s: %s\n", is.Key, fixedMessage(is.FixAction))
	}
	return failed
}

func fixedMessage(a FixAction) string {
	switch a {
	case FixInstallShim:
		return "installed shim"
	case FixReinstallShim:
		return "reinstalled shim"
	case FixResetHistory:
		return "removed unreadable history"
	default:
		return string(a)
	}
}
