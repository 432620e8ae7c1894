package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
// Equivalent of t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	req := require.New(t)
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := Load()
	req.NoError(err)

	req.Equal("release", cfg.Mode)
	req.Equal(3000, cfg.Port)
	req.Equal([]string{"http://localhost:5173"}, cfg.AllowedOrigins)
	req.Equal(int64(32768), cfg.ReadLimit)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(32, cfg.SendBuffer)
	req.Equal(20, cfg.RateLimit.Messages)
	req.Equal(10*time.Second, cfg.RateLimit.Interval)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "test")

	req.NoError(os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := `
mode: debug
port: 9999
ping_period: 10s
rate_limit:
  messages: 5
  interval: 2s
`
	req.NoError(os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	req.NoError(err)

	req.Equal("debug", cfg.Mode)
	req.Equal(9999, cfg.Port)
	req.Equal(10*time.Second, cfg.PingPeriod)
	req.Equal(5, cfg.RateLimit.Messages)
	req.Equal(2*time.Second, cfg.RateLimit.Interval)
	// Values absent from the file keep their defaults.
	req.Equal(32, cfg.SendBuffer)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "broken")

	req.NoError(os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := `
port:
  not: a-number
`
	req.NoError(os.WriteFile(filepath.Join(dir, "config", "config.broken.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	req.Error(err)
	req.Nil(cfg)
}
