package target

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
)

const (
	// Connection establishment cap, independent of the command's own timeout.
	sshConnectTimeout = 5 * time.Second
	// Bound on the one-shot connectivity probe.
	sshProbeTimeout = 10 * time.Second
)

// SSH runs commands on a remote host over a non-interactive SSH session.
// Authentication prompts are disabled (BatchMode), so credential problems
// fail fast instead of hanging the run.
type SSH struct {
	logger       zerolog.Logger
	host         string
	user         string
	port         int
	identityFile string
}

// SSHOption configures an SSH target.
type SSHOption func(*SSH)

// WithUser sets the remote login user.
func WithUser(user string) SSHOption {
	return func(s *SSH) {
		s.user = user
	}
}

// WithPort sets the remote SSH port.
func WithPort(port int) SSHOption {
	return func(s *SSH) {
		s.port = port
	}
}

// WithIdentityFile sets the identity file (private key) to use for
// authentication.
func WithIdentityFile(path string) SSHOption {
	return func(s *SSH) {
		s.identityFile = path
	}
}

// NewSSH creates an SSH execution target for host.
func NewSSH(logger zerolog.Logger, host string, opts ...SSHOption) *SSH {
	s := &SSH{
		logger: logger,
		host:   host,
		port:   22,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes command on the remote host as a single bash invocation. The
// command text is quoted into the remote command string so the remote shell
// receives it as one token.
func (s *SSH) Run(command string, timeout time.Duration) (model.CommandResult, error) {
	remoteCmd := fmt.Sprintf("bash -lc %s", shellescape.Quote(command))
	argv := append([]string{"ssh"}, s.buildArgs()...)
	argv = append(argv, s.destination(), remoteCmd)
	return runProcess(s.logger, argv, command, timeout)
}

// Probe runs a no-op command on the remote host with a short timeout to
// verify connectivity and authentication.
func (s *SSH) Probe() error {
	s.logger.Debug().Str("host", s.host).Msg("Checking SSH connectivity")

	res, err := s.Run("true", sshProbeTimeout)
	if err != nil {
		return err
	}
	if !res.Ok() {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		if msg == "" {
			msg = "ssh failed"
		}
		return fmt.Errorf("ssh connectivity check failed: %s", msg)
	}
	return nil
}

// Describe returns the target identifier for remote runs.
func (s *SSH) Describe() string {
	return s.host
}

// buildArgs constructs the SSH arguments with all configured options.
func (s *SSH) buildArgs() []string {
	args := []string{
		"-o", "BatchMode=yes",
		"-o", fmt.Sprintf("ConnectTimeout=%d", int(sshConnectTimeout.Seconds())),
		"-p", strconv.Itoa(s.port),
	}
	if s.identityFile != "" {
		args = append(args, "-i", s.identityFile)
	}
	return args
}

// destination returns the [user@]host SSH destination.
func (s *SSH) destination() string {
	if s.user != "" {
		return s.user + "@" + s.host
	}
	return s.host
}
