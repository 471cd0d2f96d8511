// Package cmd runs short-lived helper commands, in practice git plumbing.
//
// Failures come back as *Error with git's own stderr as the message, so a
// caller sees "fatal: not a git repository" rather than "exit status 128",
// and can still branch on the exit status:
//
//	out, err := cmd.Output(ctx, "", "git", "config", "--get", "core.hooksPath")
//	var cerr *cmd.Error
//	if errors.As(err, &cerr) && cerr.ExitCode() == 1 {
//	    // key not set
//	}
//
// Every invocation is announced through the context logger in verbose mode,
// together with its wall-clock duration.
//
// Hook scripts are not run through this package: they need stdin forwarding,
// timeouts and process-group termination, which live in internal/hooks.
package cmd
