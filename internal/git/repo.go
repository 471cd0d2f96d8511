package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/palotasb/githooks/internal/cmd"
)

// Repo describes the repository a hook run belongs to.
type Repo struct {
	Root      string // work tree top level
	GitDir    string // absolute git directory
	HooksPath string // directory git fires hooks from (honours core.hooksPath)
}

// ErrBareRepository is returned by Discover for a repository without a work
// tree. Server-side hooks fire there, and githooks has nothing to run.
var ErrBareRepository = errors.New("bare repository has no work tree")

// DiscoverOptions selects the repository to discover.
type DiscoverOptions struct {
	Dir    string // start directory; empty means the current directory
	GitDir string // explicit git directory, as with git --git-dir
}

// Discover resolves the repository containing opts.Dir.
// Bare repositories yield ErrBareRepository since hooks run against a work tree.
func Discover(ctx context.Context, opts DiscoverOptions) (*Repo, error) {
	base := opts.Dir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	}

	var global []string
	if opts.GitDir != "" {
		global = append(global, "--git-dir="+opts.GitDir)
	}
	args := append(global, "rev-parse", "--show-toplevel", "--absolute-git-dir", "--git-path", "hooks")

	out, err := outputGit(ctx, opts.Dir, args...)
	if err != nil {
		bare, berr := outputGit(ctx, opts.Dir, append(global, "rev-parse", "--is-bare-repository")...)
		if berr == nil && strings.TrimSpace(string(bare)) == "true" {
			return nil, ErrBareRepository
		}
		return nil, fmt.Errorf("not inside a git work tree: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 3 {
		return nil, fmt.Errorf("unexpected git rev-parse output: %q", string(out))
	}

	hooksPath := lines[2]
	if !filepath.IsAbs(hooksPath) {
		hooksPath = filepath.Join(base, hooksPath)
	}

	return &Repo{
		Root:      filepath.Clean(lines[0]),
		GitDir:    filepath.Clean(lines[1]),
		HooksPath: filepath.Clean(hooksPath),
	}, nil
}

// ConfigValue reads a single git config key in dir. An unset key yields ""
// without error.
func ConfigValue(ctx context.Context, dir, key string) (string, error) {
	out, err := outputGit(ctx, dir, "config", "--get", key)
	if err != nil {
		// git config exits 1 when the key is not set.
		var cerr *cmd.Error
		if errors.As(err, &cerr) && cerr.ExitCode() == 1 {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return strings.TrimSpace(string(out)), nil
}
