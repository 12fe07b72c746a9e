package target

import (
	"time"

	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
)

// Local runs commands on the local machine through a login shell, so catalog
// entries embedding pipes or redirection work as written.
type Local struct {
	logger zerolog.Logger
}

// NewLocal creates a local execution target.
func NewLocal(logger zerolog.Logger) *Local {
	return &Local{logger: logger}
}

// Run executes command as a single bash invocation.
func (l *Local) Run(command string, timeout time.Duration) (model.CommandResult, error) {
	return runProcess(l.logger, []string{"bash", "-lc", command}, command, timeout)
}

// Probe is a no-op for local execution; the local machine is always reachable.
func (l *Local) Probe() error {
	return nil
}

// Describe returns the target identifier for local runs.
func (l *Local) Describe() string {
	return "local"
}
