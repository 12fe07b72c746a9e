// Package target abstracts running a shell command on the machine diagnostics
// are collected from. Two implementations exist: local process execution and
// remote execution over SSH. Callers depend only on the Target interface and
// never branch on the execution mode after construction.
package target

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
)

// Target runs shell commands on the collection target.
type Target interface {
	// Run executes command through a shell on the target, bounded by timeout.
	// Command failure (including timeout) is reported inside the result, not
	// as an error; a non-nil error means the backend could not be invoked at
	// all and the run cannot continue.
	Run(command string, timeout time.Duration) (model.CommandResult, error)

	// Probe verifies the target is reachable before the full catalog runs, so
	// an unreachable target fails once with a clear message instead of once
	// per command.
	Probe() error

	// Describe returns the target identifier used for display and in the
	// manifest.
	Describe() string
}

// runProcess executes argv, capturing output and converting timeout and
// process failure into a uniform result. command is the logical command text
// recorded in the result, which may differ from argv for remote execution.
func runProcess(logger zerolog.Logger, argv []string, command string, timeout time.Duration) (model.CommandResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Child processes can outlive the killed shell and keep the output pipes
	// open; don't let them hold Wait past the deadline.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().
		Str("command", command).
		Dur("timeout", timeout).
		Msg("Running command")

	started := time.Now()
	err := cmd.Run()
	duration := time.Since(started)

	res := model.CommandResult{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	switch {
	case err != nil && ctx.Err() == context.DeadlineExceeded:
		// Partial output captured so far is kept; the marker makes the
		// timeout visible in the recorded stderr.
		res.ReturnCode = model.TimeoutReturnCode
		res.Stderr += fmt.Sprintf("\nTimed out after %ds", int(timeout.Seconds()))
	case errors.Is(err, exec.ErrWaitDelay):
		// The process itself exited; only the inherited pipes stayed open.
		res.ReturnCode = cmd.ProcessState.ExitCode()
	case err != nil:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Backend could not be spawned (e.g. binary missing).
			return model.CommandResult{}, fmt.Errorf("failed to invoke %s: %w", argv[0], err)
		}
		res.ReturnCode = exitErr.ExitCode()
	}

	return res, nil
}
