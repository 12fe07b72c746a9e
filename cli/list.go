package cli

// This file contains the list command for displaying previously collected
// bundles.

import (
	"fmt"
	"sort"
	"time"

	"github.com/incidentctl/incidentctl/history"
	"github.com/incidentctl/incidentctl/model"
	"github.com/urfave/cli/v2"
)

// sortEntriesNewestFirst orders bundles by start time, newest first. The
// recorded timestamps carry whatever UTC offset the collector ran with, so
// they are compared as instants, not as strings.
func sortEntriesNewestFirst(entries []history.Entry) {
	startedTime := func(e history.Entry) time.Time {
		t, err := time.Parse(time.RFC3339, e.Manifest.StartedAt)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	sort.Slice(entries, func(i, j int) bool {
		return startedTime(entries[i]).After(startedTime(entries[j]))
	})
}

func (a *App) list(ctx *cli.Context) error {
	outDir := expandHome(ctx.String("out"))
	limit := ctx.Int("limit")

	entries, err := history.LoadEntries(a.logger, outDir)
	if err != nil {
		return fmt.Errorf("failed to load bundle history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No bundles found in %s\n", outDir)
		return nil
	}

	sortEntriesNewestFirst(entries)

	displayed := entries
	if limit > 0 && limit < len(displayed) {
		displayed = displayed[:limit]
	}

	fmt.Printf("\n=== Bundles (%d total) ===\n\n", len(entries))

	for _, entry := range displayed {
		m := entry.Manifest

		status := "✓"
		if m.OverallStatus != model.StatusOK {
			status = "✗"
		}

		fmt.Printf("%s  %s  [%dms]  status=%s  target=%s (%s)\n",
			status, m.StartedAt, m.DurationMS, m.OverallStatus, m.Target, m.Mode)
		if m.Service != nil {
			fmt.Printf("   Service: %s\n", *m.Service)
		}
		fmt.Printf("   Commands: %d  Files: %d\n", len(m.CommandResults), len(m.IncludedFiles))
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	return nil
}
