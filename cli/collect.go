package cli

// This file contains the collection run orchestration: executing the command
// catalog against the selected target, collecting requested files, writing
// the manifest, and packaging the bundle.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"
	"github.com/incidentctl/incidentctl/bundle"
	"github.com/incidentctl/incidentctl/cli/catalog"
	"github.com/incidentctl/incidentctl/cli/target"
	"github.com/incidentctl/incidentctl/model"
	"github.com/urfave/cli/v2"
)

const (
	// Default cap for catalog commands.
	commandTimeout = 60 * time.Second
	// Cap for the per-file existence/readability probe.
	fileProbeTimeout = 20 * time.Second
	// Cap for fetching a file's contents.
	fileFetchTimeout = 30 * time.Second
)

// runReport accumulates per-item outcomes across the run. It is local to one
// collection run and threaded explicitly through the run's phases.
type runReport struct {
	results   []model.CommandSummary
	files     []model.IncludedFile
	anyFailed bool
}

// status derives the overall run status from the recorded outcomes.
func (r *runReport) status() string {
	if r.anyFailed {
		return model.StatusPartial
	}
	return model.StatusOK
}

func (a *App) collect(ctx *cli.Context) error {
	opts, err := a.resolveOptions(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ERROR: %v", err), 2)
	}
	return a.runCollection(opts, a.newTarget(opts))
}

// runCollection performs one collection run against an already constructed
// target. Its error carries the process exit code: nil for full success, 1
// for a completed run with recorded failures, 2 for fatal errors.
func (a *App) runCollection(opts collectOptions, tgt target.Target) error {
	startedAt := time.Now()

	if err := tgt.Probe(); err != nil {
		return cli.Exit(fmt.Sprintf("ERROR: %v", err), 2)
	}

	layout, err := bundle.NewLayout(expandHome(opts.Out), bundle.SanitizeTarget(tgt.Describe()), startedAt)
	if err != nil {
		if errors.Is(err, bundle.ErrExists) {
			return cli.Exit("ERROR: bundle directory already exists, try again in a second", 2)
		}
		return cli.Exit(fmt.Sprintf("ERROR: cannot create bundle directories: %v", err), 2)
	}

	a.logger.Info().
		Str("target", tgt.Describe()).
		Str("mode", opts.Mode).
		Str("dir", layout.Dir).
		Msg("Collecting diagnostics")

	report := &runReport{}

	entries := catalog.Commands(opts.Service, opts.Since)
	if err := a.runCatalog(tgt, layout, entries, report); err != nil {
		return cli.Exit(fmt.Sprintf("ERROR: %v", err), 2)
	}

	if err := a.collectFiles(tgt, layout, splitInclude(opts.Include), report); err != nil {
		return cli.Exit(fmt.Sprintf("ERROR: %v", err), 2)
	}

	finishedAt := time.Now()
	manifest := a.buildManifest(opts, tgt, startedAt, finishedAt, report)

	if err := a.finalizeBundle(layout, manifest); err != nil {
		return cli.Exit(fmt.Sprintf("ERROR: %v", err), 2)
	}

	a.logger.Info().
		Str("dir", layout.Dir).
		Str("archive", layout.ArchivePath()).
		Str("status", manifest.OverallStatus).
		Msg("Bundle complete")

	if report.anyFailed {
		return cli.Exit("", 1)
	}
	return nil
}

// finalizeBundle writes the manifest and wraps the finished bundle directory
// into its archive. On archive failure the directory tree is kept as partial
// evidence, but the manifest is rewritten in place with error status so the
// bundle records its own broken state.
func (a *App) finalizeBundle(layout *bundle.Layout, manifest *model.Manifest) error {
	if err := bundle.WriteManifest(layout, manifest); err != nil {
		return err
	}

	if err := layout.Archive(); err != nil {
		manifest.OverallStatus = model.StatusError
		if werr := bundle.WriteManifest(layout, manifest); werr != nil {
			a.logger.Warn().Err(werr).Msg("Failed to rewrite manifest after archive failure")
		}
		return err
	}

	return nil
}

// newTarget constructs the execution target for the resolved options. This is
// the only place the run branches on execution mode.
func (a *App) newTarget(opts collectOptions) target.Target {
	if opts.Mode == model.ModeSSH {
		sshOpts := []target.SSHOption{target.WithPort(opts.Port)}
		if opts.User != "" {
			sshOpts = append(sshOpts, target.WithUser(opts.User))
		}
		if opts.Identity != "" {
			sshOpts = append(sshOpts, target.WithIdentityFile(opts.Identity))
		}
		return target.NewSSH(a.logger, opts.Host, sshOpts...)
	}
	return target.NewLocal(a.logger)
}

// runCatalog executes every catalog entry in order. A failing command is
// recorded and the run continues; losing one signal must not forfeit the
// rest. Only a backend invocation error aborts.
func (a *App) runCatalog(tgt target.Target, layout *bundle.Layout, entries []catalog.Entry, report *runReport) error {
	for _, entry := range entries {
		res, err := tgt.Run(entry.Command, commandTimeout)
		if err != nil {
			return err
		}
		res.Name = entry.Name

		if !res.Ok() {
			report.anyFailed = true
			a.logger.Warn().
				Str("name", entry.Name).
				Int("returncode", res.ReturnCode).
				Msg("Command failed")
		} else {
			a.logger.Debug().
				Str("name", entry.Name).
				Dur("duration", res.Duration).
				Msg("Command completed")
		}

		logPath := filepath.Join(layout.CommandsDir, entry.Name+".log")
		if err := bundle.WriteCommandLog(logPath, res); err != nil {
			report.anyFailed = true
			a.logger.Warn().Err(err).Str("name", entry.Name).Msg("Failed to write command log")
		}

		report.results = append(report.results, res.Summary())
	}
	return nil
}

// collectFiles probes and fetches each requested file on the target. Every
// path gets exactly one outcome; no single path's failure aborts the rest.
func (a *App) collectFiles(tgt target.Target, layout *bundle.Layout, paths []string, report *runReport) error {
	for _, path := range paths {
		outcome, err := a.collectFile(tgt, layout, path)
		if err != nil {
			return err
		}
		if !outcome.Collected {
			report.anyFailed = true
			a.logger.Warn().
				Str("path", path).
				Str("reason", outcome.Reason).
				Msg("File not collected")
		}
		report.files = append(report.files, outcome)
	}
	return nil
}

func (a *App) collectFile(tgt target.Target, layout *bundle.Layout, path string) (model.IncludedFile, error) {
	outcome := model.IncludedFile{Path: path}

	q := shellescape.Quote(path)
	probe := fmt.Sprintf(
		"if [ -e %s ]; then if [ -r %s ]; then echo READABLE; else echo UNREADABLE; fi; else echo MISSING; fi",
		q, q,
	)

	probeRes, err := tgt.Run(probe, fileProbeTimeout)
	if err != nil {
		return model.IncludedFile{}, err
	}
	state := firstLine(probeRes.Stdout)
	if state == "" {
		state = "UNKNOWN"
	}

	if !probeRes.Ok() || state == "UNKNOWN" {
		outcome.Reason = strings.TrimSpace(probeRes.Stderr)
		if outcome.Reason == "" {
			outcome.Reason = "cannot inspect file"
		}
		return outcome, nil
	}

	if state != "READABLE" {
		outcome.Reason = strings.ToLower(state)
		return outcome, nil
	}

	catRes, err := tgt.Run("cat "+q, fileFetchTimeout)
	if err != nil {
		return model.IncludedFile{}, err
	}
	if !catRes.Ok() {
		outcome.Reason = strings.TrimSpace(catRes.Stderr)
		if outcome.Reason == "" {
			outcome.Reason = "cat failed"
		}
		return outcome, nil
	}

	artifact := filepath.Join(layout.FilesDir, bundle.SafeFileName(path)+".txt")
	if err := os.WriteFile(artifact, []byte(catRes.Stdout), 0o644); err != nil {
		outcome.Reason = fmt.Sprintf("write failed: %v", err)
		return outcome, nil
	}

	outcome.Collected = true
	return outcome, nil
}

// buildManifest assembles the run's summary record.
func (a *App) buildManifest(opts collectOptions, tgt target.Target, startedAt, finishedAt time.Time, report *runReport) *model.Manifest {
	var service *string
	if opts.Service != "" {
		service = &opts.Service
	}

	hostname, err := os.Hostname()
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to determine collector hostname")
		hostname = "unknown"
	}

	// Empty lists serialize as [] rather than null.
	files := report.files
	if files == nil {
		files = []model.IncludedFile{}
	}

	return &model.Manifest{
		RunID:          uuid.New().String(),
		Target:         tgt.Describe(),
		Mode:           opts.Mode,
		Service:        service,
		Since:          opts.Since,
		StartedAt:      startedAt.Format(time.RFC3339),
		FinishedAt:     finishedAt.Format(time.RFC3339),
		DurationMS:     finishedAt.Sub(startedAt).Milliseconds(),
		CommandResults: report.results,
		IncludedFiles:  files,
		OverallStatus:  report.status(),
		CollectorHost:  hostname,
	}
}

// splitInclude parses the comma-separated include list, trimming whitespace
// and discarding empty entries.
func splitInclude(raw string) []string {
	var paths []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			paths = append(paths, item)
		}
	}
	return paths
}

// firstLine returns the first line of the trimmed text.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// expandHome resolves a leading ~ in a user-supplied directory path.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
