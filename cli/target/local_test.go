package target

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
)

func requireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

func TestLocal_Run(t *testing.T) {
	requireBash(t)
	l := NewLocal(zerolog.Nop())

	res, err := l.Run("echo hello", 10*time.Second)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ReturnCode != 0 {
		t.Errorf("returncode = %d, want 0", res.ReturnCode)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
	if res.Command != "echo hello" {
		t.Errorf("command = %q, want %q", res.Command, "echo hello")
	}
}

func TestLocal_Run_ShellPipeline(t *testing.T) {
	requireBash(t)
	l := NewLocal(zerolog.Nop())

	// Catalog entries embed pipes; the command must run as one shell
	// invocation.
	res, err := l.Run("printf 'a\\nb\\nc\\n' | tail -n 1", 10*time.Second)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := strings.TrimSpace(res.Stdout); got != "c" {
		t.Errorf("stdout = %q, want %q", got, "c")
	}
}

func TestLocal_Run_Failure(t *testing.T) {
	requireBash(t)
	l := NewLocal(zerolog.Nop())

	res, err := l.Run("echo oops >&2; exit 3", 10*time.Second)
	if err != nil {
		t.Fatalf("Run returned error for command failure: %v", err)
	}
	if res.ReturnCode != 3 {
		t.Errorf("returncode = %d, want 3", res.ReturnCode)
	}
	if res.Ok() {
		t.Errorf("Ok() = true for returncode 3")
	}
	if got := strings.TrimSpace(res.Stderr); got != "oops" {
		t.Errorf("stderr = %q, want %q", got, "oops")
	}
}

func TestLocal_Run_Timeout(t *testing.T) {
	requireBash(t)
	l := NewLocal(zerolog.Nop())

	res, err := l.Run("echo started; sleep 5", 1*time.Second)
	if err != nil {
		t.Fatalf("Run returned error for timeout: %v", err)
	}
	if res.ReturnCode != model.TimeoutReturnCode {
		t.Errorf("returncode = %d, want %d", res.ReturnCode, model.TimeoutReturnCode)
	}
	if !strings.Contains(res.Stderr, "Timed out after 1s") {
		t.Errorf("stderr %q missing timeout marker", res.Stderr)
	}
	// Output captured before the deadline is preserved.
	if !strings.Contains(res.Stdout, "started") {
		t.Errorf("stdout %q lost pre-timeout output", res.Stdout)
	}
}

func TestLocal_ProbeAndDescribe(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	if err := l.Probe(); err != nil {
		t.Errorf("Probe() = %v, want nil", err)
	}
	if l.Describe() != "local" {
		t.Errorf("Describe() = %q, want %q", l.Describe(), "local")
	}
}
