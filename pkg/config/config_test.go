package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, DefaultPrefix, cfg.Logging.Prefix)
	assert.Empty(t, cfg.Logging.Verbosity)
	assert.Empty(t, cfg.Logging.Color)
	assert.False(t, cfg.Dump.HeadersEnabled())
	assert.False(t, cfg.Dump.PacketsEnabled())
	assert.Empty(t, cfg.Capture.File)
	assert.Equal(t, DefaultMaxFrame, cfg.Capture.MaxFrameBytes)
}

func TestLoadEnvironment(t *testing.T) {
	cfg, err := Load(nil, map[string]string{
		EnvVerbosity:   "5",
		EnvColor:       "1",
		EnvLogPrefix:   "client",
		EnvDumpHeaders: "yes",
		EnvDumpPackets: "1",
		EnvCaptureFile: "/tmp/frames.mcap",
		EnvCaptureMax:  "128",
	})
	require.NoError(t, err)

	assert.Equal(t, "5", cfg.Logging.Verbosity)
	assert.Equal(t, "1", cfg.Logging.Color)
	assert.Equal(t, "client", cfg.Logging.Prefix)
	assert.True(t, cfg.Dump.HeadersEnabled())
	assert.True(t, cfg.Dump.PacketsEnabled())
	assert.Equal(t, "/tmp/frames.mcap", cfg.Capture.File)
	assert.Equal(t, 128, cfg.Capture.MaxFrameBytes)
}

func TestLoadYAMLThenEnvironment(t *testing.T) {
	yamlCfg := `
logging:
  prefix: from-file
  verbosity: 3
dump:
  headers: on
capture:
  max_frame_bytes: 64
`
	cfg, err := Load(strings.NewReader(yamlCfg), map[string]string{
		EnvVerbosity: "7",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Logging.Prefix)
	assert.Equal(t, "7", cfg.Logging.Verbosity, "environment wins over file")
	assert.True(t, cfg.Dump.HeadersEnabled())
	assert.False(t, cfg.Dump.PacketsEnabled())
	assert.Equal(t, 64, cfg.Capture.MaxFrameBytes)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(strings.NewReader("logging: [unterminated"), map[string]string{})
	assert.Error(t, err)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	cfg, err := Load(nil, map[string]string{EnvCaptureMax: "lots"})
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultMaxFrame, cfg.Capture.MaxFrameBytes)
}

func TestLoadInvalidVariableKeepsOthers(t *testing.T) {
	cfg, err := Load(nil, map[string]string{
		EnvDumpHeaders: "1",
		EnvVerbosity:   "7",
		EnvCaptureMax:  "4k",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxFrameBytes")

	require.NotNil(t, cfg)
	assert.True(t, cfg.Dump.HeadersEnabled())
	assert.Equal(t, "7", cfg.Logging.Verbosity)
	assert.Equal(t, DefaultPrefix, cfg.Logging.Prefix)
	assert.Equal(t, DefaultMaxFrame, cfg.Capture.MaxFrameBytes)
}

func TestFromEnvironmentInvalidVariableKeepsOthers(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvDumpHeaders, "1")
	t.Setenv(EnvVerbosity, "7")
	t.Setenv(EnvCaptureMax, "4k")

	cfg, err := FromEnvironment()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.Dump.HeadersEnabled())
	assert.Equal(t, "7", cfg.Logging.Verbosity)
}

func TestLoadEmptyVariableIsAbsent(t *testing.T) {
	cfg, err := Load(nil, map[string]string{EnvDumpHeaders: ""})
	require.NoError(t, err)
	assert.False(t, cfg.Dump.HeadersEnabled())
}

func TestFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcdiag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dump:\n  packets: x\n"), 0o644))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvDumpHeaders, "1")

	cfg, err := FromEnvironment()
	require.NoError(t, err)
	assert.True(t, cfg.Dump.HeadersEnabled())
	assert.True(t, cfg.Dump.PacketsEnabled())
}

func TestFromEnvironmentMissingFile(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(EnvDumpHeaders, "1")

	cfg, err := FromEnvironment()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.Dump.HeadersEnabled(), "environment still applies")
}
