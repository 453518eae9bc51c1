// ABOUTME: Wires config, output device, engine and the control surface
// ABOUTME: Chooses the TUI or the line console depending on stdin
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/tick/internal/config"
	"github.com/harperreed/tick/internal/console"
	"github.com/harperreed/tick/internal/ui"
	"github.com/harperreed/tick/internal/version"
	"github.com/harperreed/tick/pkg/audio/output"
	"github.com/harperreed/tick/pkg/metronome"
	"github.com/harperreed/tick/pkg/tempo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func runMetronome(cmd *cobra.Command, cfg config.Config) error {
	useTUI := !cfg.NoTUI && isatty.IsTerminal(os.Stdin.Fd())

	closeLog, err := setupLogging(cfg.LogFile, useTUI, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLog()

	log.Printf("Starting %s: tempo %s BPM, %dHz", version.String(), cfg.Tempo, cfg.SampleRate)

	engine, err := metronome.NewEngine(metronome.EngineConfig{
		Device: output.NewOto(output.WithAutostart(cfg.Autostart)),
		Store:  tempo.NewStore(cfg.Tempo),
		OnError: func(err error) {
			log.Printf("Audio error: %v", err)
		},
	})
	if err != nil {
		return err
	}

	if err := engine.Initialize(cfg.SampleRate); err != nil {
		return fmt.Errorf("failed to start audio: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Printf("Error closing engine: %v", err)
		}
	}()

	engine.SetVolume(cfg.Volume)

	if useTUI {
		return ui.Run(engine, cfg.Volume)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return console.New(engine, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}

// setupLogging sends logs only to the file while the TUI owns the screen,
// and to both the file and out otherwise.
func setupLogging(path string, useTUI bool, out io.Writer) (func(), error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(out, f))
	}

	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
