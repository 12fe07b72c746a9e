package cli

import (
	"fmt"
	"os"

	"github.com/incidentctl/incidentctl/model"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Config mirrors the collect command's flags. A config file fills in defaults;
// flags given on the command line always win.
type Config struct {
	Mode     string `yaml:"mode"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Port     int    `yaml:"port"`
	Identity string `yaml:"identity"`
	Service  string `yaml:"service"`
	Since    string `yaml:"since"`
	Out      string `yaml:"out"`
	Include  string `yaml:"include"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// collectOptions is the fully resolved configuration of one run.
type collectOptions struct {
	Mode     string
	Host     string
	User     string
	Port     int
	Identity string
	Service  string
	Since    string
	Out      string
	Include  string
}

// resolveOptions merges built-in defaults, the optional config file, and
// command-line flags (in increasing precedence) and validates the result.
func (a *App) resolveOptions(ctx *cli.Context) (collectOptions, error) {
	opts := collectOptions{
		Mode:  model.ModeLocal,
		Port:  22,
		Since: "2h",
		Out:   "./bundles",
	}

	if path := ctx.String("config"); path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return collectOptions{}, err
		}
		a.logger.Debug().Str("config", path).Msg("Loaded config file")
		opts.apply(cfg)
	}

	if ctx.IsSet("mode") {
		opts.Mode = ctx.String("mode")
	}
	if ctx.IsSet("host") {
		opts.Host = ctx.String("host")
	}
	if ctx.IsSet("user") {
		opts.User = ctx.String("user")
	}
	if ctx.IsSet("port") {
		opts.Port = ctx.Int("port")
	}
	if ctx.IsSet("identity") {
		opts.Identity = ctx.String("identity")
	}
	if ctx.IsSet("service") {
		opts.Service = ctx.String("service")
	}
	if ctx.IsSet("since") {
		opts.Since = ctx.String("since")
	}
	if ctx.IsSet("out") {
		opts.Out = ctx.String("out")
	}
	if ctx.IsSet("include") {
		opts.Include = ctx.String("include")
	}

	if err := opts.validate(); err != nil {
		return collectOptions{}, err
	}
	return opts, nil
}

// apply overlays the non-zero fields of a config file onto the options.
func (o *collectOptions) apply(cfg *Config) {
	if cfg.Mode != "" {
		o.Mode = cfg.Mode
	}
	if cfg.Host != "" {
		o.Host = cfg.Host
	}
	if cfg.User != "" {
		o.User = cfg.User
	}
	if cfg.Port != 0 {
		o.Port = cfg.Port
	}
	if cfg.Identity != "" {
		o.Identity = cfg.Identity
	}
	if cfg.Service != "" {
		o.Service = cfg.Service
	}
	if cfg.Since != "" {
		o.Since = cfg.Since
	}
	if cfg.Out != "" {
		o.Out = cfg.Out
	}
	if cfg.Include != "" {
		o.Include = cfg.Include
	}
}

func (o collectOptions) validate() error {
	if o.Mode != model.ModeLocal && o.Mode != model.ModeSSH {
		return fmt.Errorf("invalid mode %q: must be local or ssh", o.Mode)
	}
	if o.Mode == model.ModeSSH && o.Host == "" {
		return fmt.Errorf("--host is required in ssh mode")
	}
	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("--port must be between 1 and 65535")
	}
	return nil
}
