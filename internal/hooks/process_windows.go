//go:build windows

package hooks

import "os/exec"

// configureProcess keeps the default cancellation, which kills the child.
func configureProcess(_ *exec.Cmd, _ bool) {}
