// Package catalog defines the fixed set of diagnostic commands collected
// during a run. The set is a pure function of the requested service and
// lookback window, so the same inputs always produce the same ordered
// command list.
package catalog

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
)

// Entry is one diagnostic command with its logical name. The name is unique
// within the catalog and doubles as the per-command log file name.
type Entry struct {
	Name    string
	Command string
}

// Commands returns the ordered diagnostic command set. The unconditional
// entries always come first; service-scoped entries are appended when a
// service name is given, never interleaved.
//
// Both service and since are caller-supplied and pass through shell quoting
// before being embedded in command text, so their value is always a single
// opaque token to the target shell.
func Commands(service, since string) []Entry {
	qSince := shellescape.Quote(since)
	entries := []Entry{
		{"hostnamectl", "hostnamectl"},
		{"date_iso", "date -Is"},
		{"uptime", "uptime"},
		{"journal_errors", fmt.Sprintf("journalctl -p err --since %s --no-pager", qSince)},
		{"dmesg_tail", "dmesg -T | tail -n 400"},
		{"ss_tulpen", "ss -tulpen"},
		{"df_h", "df -h"},
		{"df_i", "df -i"},
		{"free_m", "free -m"},
	}

	if service != "" {
		qService := shellescape.Quote(service)
		entries = append(entries,
			Entry{"journal_service", fmt.Sprintf("journalctl -u %s --since %s --no-pager", qService, qSince)},
			Entry{"systemctl_status", fmt.Sprintf("systemctl status %s --no-pager", qService)},
			Entry{"systemctl_show", fmt.Sprintf("systemctl show %s -p ActiveState,SubState,ExecMainStatus,ExecMainStartTimestamp", qService)},
		)
	}

	return entries
}
