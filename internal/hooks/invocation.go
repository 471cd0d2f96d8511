package hooks

// Environment variables set for every entry.
const (
	EnvHook  = "GITHOOKS_HOOK"
	EnvEntry = "GITHOOKS_ENTRY"
	EnvRoot  = "GITHOOKS_ROOT"
	EnvRepo  = "GITHOOKS_REPO"
)

// Invocation is what git handed to the hook: its type, arguments and stdin,
// plus the repository it fired in. It is read-only once built.
type Invocation struct {
	Hook      string   // hook type, e.g. "pre-commit"
	Args      []string // positional arguments from git, forwarded verbatim
	Stdin     []byte   // stdin from git; empty when git sends none
	RepoRoot  string   // working directory for every entry
	HooksRoot string   // directory holding one subdirectory per hook type
	Env       []string // extra KEY=VALUE pairs for every entry
}

// childEnv builds the environment for one entry on top of base.
func (inv Invocation) childEnv(base []string, e Entry) []string {
	env := make([]string, 0, len(base)+len(inv.Env)+4)
	env = append(env, base...)
	env = append(env, inv.Env...)
	return append(env,
		EnvHook+"="+inv.Hook,
		EnvEntry+"="+e.Name,
		EnvRoot+"="+inv.HooksRoot,
		EnvRepo+"="+inv.RepoRoot,
	)
}
