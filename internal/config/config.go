// ABOUTME: Runtime configuration loaded from the environment
// ABOUTME: Command-line flags override these defaults
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/harperreed/tick/pkg/audio"
	"github.com/harperreed/tick/pkg/tempo"
)

// Config holds all runtime configuration
type Config struct {
	// Metronome
	Tempo      tempo.BPM
	SampleRate int
	Volume     int // 0-100

	// Output starts audible instead of waiting for the first toggle
	Autostart bool

	// Interface
	NoTUI   bool
	LogFile string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Tempo:      tempo.BPM(envFloat("TICK_TEMPO", float64(tempo.Default))),
		SampleRate: envInt("TICK_SAMPLE_RATE", audio.DefaultSampleRate),
		Volume:     envInt("TICK_VOLUME", 100),
		Autostart:  envBool("TICK_AUTOSTART", false),
		NoTUI:      envBool("TICK_NO_TUI", false),
		LogFile:    envStr("TICK_LOG_FILE", "tick.log"),
	}
}

// Validate normalises the configuration, clamping the tempo and volume.
// It fails only for values that cannot be repaired.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	t, err := tempo.FromFloat(float64(c.Tempo))
	if err != nil {
		t = tempo.Default
	}
	c.Tempo = t
	if c.Volume < 0 {
		c.Volume = 0
	} else if c.Volume > 100 {
		c.Volume = 100
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
