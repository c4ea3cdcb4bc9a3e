package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = []AppKey{
	{Name: "vendor_id", Default: "7312b2db-b028-4bd9-9d8a-a8cfa006029e", Desc: "vendor id"},
	{Name: "actions", Default: []string{"ADD", "REMOVE"}, Desc: "actions"},
	{Name: "banner_ttl", Default: 5 * time.Second, Desc: "banner ttl"},
}

func load(t *testing.T, args ...string) (*CoreConfig, AppConfigValues, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	return loadFrom(nil, fs, args, EnvPrefix, testKeys)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, app, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodyBytes)
	assert.True(t, cfg.EnableCompression)
	assert.True(t, cfg.EnableSecurityHeaders)

	assert.Equal(t, "7312b2db-b028-4bd9-9d8a-a8cfa006029e", app.String("vendor_id"))
	assert.Equal(t, []string{"ADD", "REMOVE"}, app.StringSlice("actions"))
	assert.Equal(t, 5*time.Second, app.Duration("banner_ttl", time.Minute))
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"http_port: 9000\nlog_level: warn\nactions: [GRANT]\nbanner_ttl: 7s\n"), 0o600))

	t.Setenv("VENDORGRID_LOG_LEVEL", "error")
	t.Setenv("VENDORGRID_ACTIONS", `["A","B"]`)

	cfg, app, err := load(t, "--http_port=9100")
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port, "flag beats file")
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, []string{"A", "B"}, app.StringSlice("actions"))
	assert.Equal(t, 7*time.Second, app.Duration("banner_ttl", time.Minute))
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := load(t, "--http_port=0", "--env=staging", "--read_timeout=soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http_port must be in 1..65535")
	assert.Contains(t, err.Error(), `env must be "dev" or "prod"`)
	assert.Contains(t, err.Error(), "read_timeout")
}

func TestLoad_BadListValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VENDORGRID_ACTIONS", "ADD,REMOVE")

	_, _, err := load(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"actions" expects a JSON array`)
}

func TestRegisterAppFlags_Conflicts(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCoreFlags(fs)

	err := registerAppFlags(fs, []AppKey{{Name: "http_port", Default: 1}})
	assert.Error(t, err)

	err = registerAppFlags(fs, []AppKey{{Name: "weird", Default: 1.5}})
	assert.Error(t, err)
}

func TestParseDurationFlexible(t *testing.T) {
	tests := []struct {
		raw     any
		want    time.Duration
		wantErr bool
	}{
		{"90s", 90 * time.Second, false},
		{"120", 120 * time.Second, false},
		{"", time.Minute, false},
		{30, 30 * time.Second, false},
		{int64(2), 2 * time.Second, false},
		{1.5, 1500 * time.Millisecond, false},
		{"-1s", time.Minute, true},
		{"later", time.Minute, true},
		{nil, time.Minute, false},
		{true, time.Minute, false},
		{int32(3), 3 * time.Second, false},
		{"0", time.Minute, true},
		{0, time.Minute, true},
		{time.Duration(0), time.Minute, true},
		{2 * time.Hour, 2 * time.Hour, false},
	}
	for _, tt := range tests {
		got, err := parseDurationFlexible(tt.raw, time.Minute)
		assert.Equal(t, tt.want, got, "%v", tt.raw)
		assert.Equal(t, tt.wantErr, err != nil, "%v", tt.raw)
	}
}
