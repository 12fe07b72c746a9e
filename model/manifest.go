package model

// OverallStatus values recorded in the manifest.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusError   = "error"
)

// Execution modes for a collection run.
const (
	ModeLocal = "local"
	ModeSSH   = "ssh"
)

// CommandSummary is the per-command record stored in the manifest.
type CommandSummary struct {
	// Logical name of the catalog entry
	Name string `json:"name"`
	// Exact command text that was executed
	Command string `json:"command"`
	// Process return code
	ReturnCode int `json:"returncode"`
	// Wall-clock execution time in milliseconds
	DurationMS int64 `json:"duration_ms"`
	// Size of the captured stdout in bytes
	StdoutBytes int `json:"stdout_bytes"`
	// Size of the captured stderr in bytes
	StderrBytes int `json:"stderr_bytes"`
}

// IncludedFile is the per-file record stored in the manifest. Exactly one of
// {Collected=true, Reason=""} or {Collected=false, Reason!=""} holds.
type IncludedFile struct {
	// Requested path, exactly as given by the caller
	Path string `json:"path"`
	// Whether the file contents were written into the bundle
	Collected bool `json:"collected"`
	// Why collection failed (empty when collected)
	Reason string `json:"reason"`
}

// Manifest is the run's summary record, written as manifest.json at the
// bundle root.
type Manifest struct {
	// Unique ID for this collection run
	RunID string `json:"run_id"`
	// Target identifier ("local" or the remote host)
	Target string `json:"target"`
	// Execution mode (local or ssh)
	Mode string `json:"mode"`
	// Service name, nil when no service-scoped commands ran
	Service *string `json:"service"`
	// Log lookback window, e.g. "2h"
	Since string `json:"since"`
	// Start timestamp, RFC3339 with second precision
	StartedAt string `json:"started_at"`
	// Finish timestamp, RFC3339 with second precision
	FinishedAt string `json:"finished_at"`
	// Total run time in milliseconds
	DurationMS int64 `json:"duration_ms"`
	// Per-command summaries in catalog order
	CommandResults []CommandSummary `json:"command_results"`
	// Per-file outcomes in request order
	IncludedFiles []IncludedFile `json:"included_files"`
	// One of ok, partial, error
	OverallStatus string `json:"overall_status"`
	// Hostname of the machine running the collector
	CollectorHost string `json:"collector_host"`
}
