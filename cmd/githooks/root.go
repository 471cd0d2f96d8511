package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/git"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
	"github.com/palotasb/githooks/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// globalConfigErr is reported by commands that need configuration,
	// so help and completion still work with a broken config file.
	globalConfigErr error
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupInspect = "inspect"
	GroupConfig  = "config"
)

// exitCodeError ends the process with a specific status without printing
// anything; the command has already reported why.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "githooks",
	Short: "Run version-controlled git hooks",
	Long: `githooks runs the scripts a project keeps in its repository for each git hook.

Put executable scripts in githooks/<hook-type>/ at the top of the work tree,
run 'githooks install' once per clone, and git will run them in filename
order on every matching event.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Flags are parsed now; replace the logger created before parsing.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)

		if cmd.Annotations[annotationNoGit] == "true" {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// annotationNoGit marks commands that work without git installed.
const annotationNoGit = "githooks/no-git"

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load global config; errors surface from commands that need it.
	loadedCfg, err := config.Load()
	if err != nil {
		globalConfigErr = err
	}
	styles.Init(loadedCfg.Theme)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics)
	ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))

	// Add output printer (stdout for primary data), downsampled to what
	// the terminal supports
	ctx = output.WithPrinter(ctx, output.Downsample(os.Stdout, os.Environ(), loadedCfg.Theme == config.ThemeNone))

	// Per-repo config resolution
	ctx = config.WithResolver(ctx, config.NewResolver(&loadedCfg, os.Getenv))

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'githooks -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands and debug details")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only report failures")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())

	// Inspection commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newHistoryCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
