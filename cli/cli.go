package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "incidentctl"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Collect incident diagnostics into a bundle directory and tar.gz archive",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "collect",
		Usage:  "Collect diagnostics from the local machine or a remote host over SSH",
		Action: app.collect,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Execution mode: local or ssh",
				Value: "local",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Remote host for --mode ssh",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "SSH user for --mode ssh",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "SSH port",
				Value: 22,
			},
			&cli.StringFlag{
				Name:  "identity",
				Usage: "SSH private key path",
			},
			&cli.StringFlag{
				Name:  "service",
				Usage: "Service to collect service-scoped diagnostics for",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: `journalctl lookback window, e.g. "2h"`,
				Value: "2h",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory for bundles",
				Value:   "./bundles",
			},
			&cli.StringFlag{
				Name:  "include",
				Usage: "Comma-separated list of extra files to collect",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file providing defaults for the flags above",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previously collected bundles",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory to scan for bundles",
				Value:   "./bundles",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
