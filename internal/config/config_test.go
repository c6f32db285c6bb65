package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so a developer's local
// config.yaml cannot leak into the run.
func chdir(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
	assert.True(t, cfg.Security.EnableCORS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 6, cfg.Analysis.DefaultShelfLifeMonths)
	assert.Equal(t, 6, cfg.Analysis.WindowStartMonth)
	assert.Equal(t, 12, cfg.Analysis.WindowEndMonth)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("SSF_SERVER_PORT", "9090")
	t.Setenv("SSF_ANALYSIS_DEFAULT_SHELF_LIFE_MONTHS", "12")
	t.Setenv("SSF_ANALYSIS_WINDOW_START_MONTH", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Analysis.DefaultShelfLifeMonths)
	assert.Equal(t, 1, cfg.Analysis.WindowStartMonth)
}

func TestLoad_ConfigFile(t *testing.T) {
	chdir(t)

	yaml := `
server:
  port: 7070
analysis:
  default_shelf_life_months: 3
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Analysis.DefaultShelfLifeMonths)
	// Untouched values still get their env defaults.
	assert.Equal(t, 12, cfg.Analysis.WindowEndMonth)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte("server:\n  port: 7070\n"), 0o644))
	t.Setenv("SSF_SERVER_PORT", "9191")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"SSF_SERVER_PORT": "70000"}, "invalid server port"},
		{"bad shelf life", map[string]string{"SSF_ANALYSIS_DEFAULT_SHELF_LIFE_MONTHS": "90"}, "invalid default shelf life"},
		{"bad window month", map[string]string{"SSF_ANALYSIS_WINDOW_START_MONTH": "13"}, "invalid window start month"},
		{"inverted window", map[string]string{
			"SSF_ANALYSIS_WINDOW_START_MONTH": "10",
			"SSF_ANALYSIS_WINDOW_END_MONTH":   "4",
		}, "after end month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Analysis.DefaultShelfLifeMonths)
}
