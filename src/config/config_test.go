package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hycu-check/src/config"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	d := config.Default()
	assert.Equal(t, 8443, d.Port)
	assert.Equal(t, 10*time.Second, d.Timeout)
	assert.Equal(t, 200, d.PageSize)
	assert.Equal(t, 5, d.BackupPageSize)
	assert.Equal(t, 1, d.CriticalDays)
	assert.False(t, d.VerifyTLS)
	assert.Equal(t, config.DefaultExcludeReason, d.ExcludeReason)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
host: hycu.lab
token: s3cret
verify_tls: true
timeout: 30s
critical_days: 3
`))
	require.NoError(t, err)
	assert.Equal(t, "hycu.lab", cfg.Host)
	assert.Equal(t, "s3cret", cfg.Token)
	assert.True(t, cfg.VerifyTLS)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.CriticalDays)
	assert.Equal(t, 200, cfg.PageSize, "unset keys keep defaults")
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("hots: typo\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyEnv_DoesNotOverrideExplicit(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "from-file"
	cfg = cfg.ApplyEnv(envMap(map[string]string{config.EnvHost: "from-env", config.EnvToken: "tok"}))
	assert.Equal(t, "from-file", cfg.Host)
	assert.Equal(t, "tok", cfg.Token)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.Error(t, cfg.Validate(), "host missing")
	cfg.Host = "hycu"
	require.Error(t, cfg.Validate(), "token missing")
	cfg.Token = "t"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Workers = 0
	require.Error(t, bad.Validate())
	bad = cfg
	bad.CriticalDays = -1
	require.Error(t, bad.Validate())
	bad = cfg
	bad.PageSize = 0
	require.Error(t, bad.Validate())
}

func TestFromFlags_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hycu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: file-host\ntoken: file-token\ncritical_days: 5\n"), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--host", "flag-host", "--workers", "8"}))

	cfg, err := config.FromFlags(fs, envMap(map[string]string{config.EnvHost: "env-host"}))
	require.NoError(t, err)
	assert.Equal(t, "flag-host", cfg.Host)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, 5, cfg.CriticalDays)
	assert.Equal(t, 8, cfg.Workers)
}

func TestFromFlags_EnvFillsGaps(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.FromFlags(fs, envMap(map[string]string{config.EnvHost: "env-host", config.EnvToken: "env-token"}))
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.Host)
	assert.Equal(t, "env-token", cfg.Token)

	_, err = config.FromFlags(fs, noEnv)
	require.Error(t, err)
}

func TestFromFlags_FileBeatsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hycu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: file-host\n"), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path}))

	cfg, err := config.FromFlags(fs, envMap(map[string]string{config.EnvHost: "env-host", config.EnvToken: "env-token"}))
	require.NoError(t, err)
	assert.Equal(t, "file-host", cfg.Host)
	assert.Equal(t, "env-token", cfg.Token, "env fills what the file left empty")
}
