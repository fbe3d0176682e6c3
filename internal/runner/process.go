package runner

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait keeps reading pipes after the process is
// gone, so an orphaned grandchild holding stdout cannot block a submission.
const waitDelay = 500 * time.Millisecond

type procResult struct {
	stdout   string
	stderr   string
	exitCode int
	elapsed  time.Duration
	timedOut bool
}

// runProcess starts argv in dir and waits for it. A zero timeout means no
// limit. The returned error is reserved for launch failures and caller
// cancellation; exit codes and timeouts are reported in procResult.
func runProcess(ctx context.Context, dir string, argv []string, timeout time.Duration) (procResult, error) {
	var res procResult
	if len(argv) == 0 {
		return res, errors.New("empty command")
	}

	runCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	configureKill(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return res, err
	}
	err := cmd.Wait()
	res.elapsed = time.Since(start)
	reapGroup(cmd)
	res.stdout = stdout.String()
	res.stderr = stderr.String()

	if timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		res.timedOut = true
		res.exitCode = -1
		return res, nil
	}
	if ctx.Err() != nil {
		res.exitCode = -1
		return res, ctx.Err()
	}
	if err == nil {
		return res, nil
	}
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

// isMissingTool reports whether a launch error means the executable does not exist.
func isMissingTool(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
