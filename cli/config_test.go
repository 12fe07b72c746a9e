package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/incidentctl/incidentctl/model"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidentctl.yaml")
	content := `
mode: ssh
host: web-01
user: deploy
port: 2222
identity: /home/deploy/.ssh/id_ed25519
service: nginx
since: 6h
out: /srv/bundles
include: /etc/hostname,/var/log/app.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ssh", cfg.Mode)
	require.Equal(t, "web-01", cfg.Host)
	require.Equal(t, "deploy", cfg.User)
	require.Equal(t, 2222, cfg.Port)
	require.Equal(t, "/home/deploy/.ssh/id_ed25519", cfg.Identity)
	require.Equal(t, "nginx", cfg.Service)
	require.Equal(t, "6h", cfg.Since)
	require.Equal(t, "/srv/bundles", cfg.Out)
	require.Equal(t, "/etc/hostname,/var/log/app.log", cfg.Include)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestCollectOptions_Apply(t *testing.T) {
	opts := collectOptions{
		Mode:  model.ModeLocal,
		Port:  22,
		Since: "2h",
		Out:   "./bundles",
	}

	// Config fills in what it sets; untouched fields keep their defaults.
	opts.apply(&Config{Mode: "ssh", Host: "web-01", Since: "6h"})

	require.Equal(t, model.ModeSSH, opts.Mode)
	require.Equal(t, "web-01", opts.Host)
	require.Equal(t, "6h", opts.Since)
	require.Equal(t, 22, opts.Port)
	require.Equal(t, "./bundles", opts.Out)
}

func TestCollectOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    collectOptions
		wantErr string
	}{
		{
			name: "valid local",
			opts: collectOptions{Mode: model.ModeLocal, Port: 22},
		},
		{
			name: "valid ssh",
			opts: collectOptions{Mode: model.ModeSSH, Host: "web-01", Port: 22},
		},
		{
			name:    "invalid mode",
			opts:    collectOptions{Mode: "telnet", Port: 22},
			wantErr: "invalid mode",
		},
		{
			name:    "ssh without host",
			opts:    collectOptions{Mode: model.ModeSSH, Port: 22},
			wantErr: "--host is required",
		},
		{
			name:    "port too low",
			opts:    collectOptions{Mode: model.ModeLocal, Port: 0},
			wantErr: "--port must be between",
		},
		{
			name:    "port too high",
			opts:    collectOptions{Mode: model.ModeLocal, Port: 70000},
			wantErr: "--port must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
