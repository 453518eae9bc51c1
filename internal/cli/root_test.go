// ABOUTME: Tests for the root command
// ABOUTME: Verifies flag parsing, env defaults and validation
package cli

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/tick/internal/config"
	"github.com/harperreed/tick/pkg/tempo"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var got config.Config
	cmd := newRootCmd(func(cmd *cobra.Command, cfg config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	return got, err
}

func TestRootDefaults(t *testing.T) {
	t.Setenv("TICK_TEMPO", "")
	t.Setenv("TICK_SAMPLE_RATE", "")

	cfg, err := captureConfig(t)
	require.NoError(t, err)
	assert.Equal(t, tempo.Default, cfg.Tempo)
	assert.Equal(t, 48000, cfg.SampleRate)
}

func TestRootFlags(t *testing.T) {
	cfg, err := captureConfig(t, "--tempo", "96.5", "--sample-rate", "44100", "--autostart", "--no-tui", "--volume", "60", "--log-file", "x.log")
	require.NoError(t, err)
	assert.Equal(t, tempo.BPM(96.5), cfg.Tempo)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.True(t, cfg.Autostart)
	assert.True(t, cfg.NoTUI)
	assert.Equal(t, 60, cfg.Volume)
	assert.Equal(t, "x.log", cfg.LogFile)
}

func TestRootFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TICK_TEMPO", "200")

	cfg, err := captureConfig(t)
	require.NoError(t, err)
	assert.Equal(t, tempo.BPM(200), cfg.Tempo)

	cfg, err = captureConfig(t, "-t", "70")
	require.NoError(t, err)
	assert.Equal(t, tempo.BPM(70), cfg.Tempo)
}

func TestRootClampsTempo(t *testing.T) {
	cfg, err := captureConfig(t, "--tempo", "1000")
	require.NoError(t, err)
	assert.Equal(t, tempo.Max, cfg.Tempo)
}

func TestRootRejectsBadSampleRate(t *testing.T) {
	_, err := captureConfig(t, "--sample-rate", "0")
	assert.Error(t, err)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := captureConfig(t, "extra")
	assert.Error(t, err)
}

func TestRootVersion(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "tick version")
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tick.log")
	out := &bytes.Buffer{}

	closeLog, err := setupLogging(path, false, out)
	require.NoError(t, err)
	log.Printf("hello")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, out.String(), "hello")
}

func TestSetupLoggingBadPath(t *testing.T) {
	_, err := setupLogging(filepath.Join(t.TempDir(), "missing", "tick.log"), true, &bytes.Buffer{})
	assert.Error(t, err)
}
