package model

import "time"

// TimeoutReturnCode is the reserved return code recorded when a command
// exceeds its execution timeout, mirroring the conventional timeout(1) code.
const TimeoutReturnCode = 124

// CommandResult represents the outcome of one command executed on the target.
// It is constructed once by the execution adapter and never mutated afterwards,
// apart from the runner tagging it with its catalog name.
type CommandResult struct {
	// Logical name of the catalog entry, unique within a run
	Name string
	// Exact command text that was executed
	Command string
	// Process return code (TimeoutReturnCode means the command timed out)
	ReturnCode int
	// Captured standard output
	Stdout string
	// Captured standard error, including any timeout marker
	Stderr string
	// Wall-clock execution time
	Duration time.Duration
}

// Ok reports whether the command succeeded.
func (r CommandResult) Ok() bool {
	return r.ReturnCode == 0
}

// Summary derives the manifest entry for this result. Full output stays in the
// per-command log file; the manifest only records sizes.
func (r CommandResult) Summary() CommandSummary {
	return CommandSummary{
		Name:        r.Name,
		Command:     r.Command,
		ReturnCode:  r.ReturnCode,
		DurationMS:  r.Duration.Milliseconds(),
		StdoutBytes: len(r.Stdout),
		StderrBytes: len(r.Stderr),
	}
}
