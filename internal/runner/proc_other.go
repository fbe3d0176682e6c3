//go:build !unix

package runner

import "os/exec"

// configureKill keeps the exec default, which kills only the direct child.
func configureKill(cmd *exec.Cmd) {}

func reapGroup(cmd *exec.Cmd) {}
