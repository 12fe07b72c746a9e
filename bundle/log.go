package bundle

import (
	"fmt"
	"os"
	"strings"

	"github.com/incidentctl/incidentctl/model"
)

// WriteCommandLog persists the full record of one executed command as a
// human-readable log artifact.
func WriteCommandLog(path string, res model.CommandResult) error {
	payload := []string{
		fmt.Sprintf("# command: %s", res.Command),
		fmt.Sprintf("# returncode: %d", res.ReturnCode),
		fmt.Sprintf("# duration_ms: %d", res.Duration.Milliseconds()),
		"",
		"## stdout",
		strings.TrimRight(res.Stdout, " \t\r\n"),
		"",
		"## stderr",
		strings.TrimRight(res.Stderr, " \t\r\n"),
		"",
	}
	if err := os.WriteFile(path, []byte(strings.Join(payload, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write command log: %w", err)
	}
	return nil
}
