// ABOUTME: Root command for the tick CLI
// ABOUTME: Merges environment config with flags and starts the metronome
package cli

import (
	"github.com/harperreed/tick/internal/config"
	"github.com/harperreed/tick/internal/version"
	"github.com/harperreed/tick/pkg/tempo"
	"github.com/spf13/cobra"
)

// runFunc starts the metronome with a validated configuration
type runFunc func(cmd *cobra.Command, cfg config.Config) error

// NewRootCmd builds the root command. Flag defaults come from the
// environment so that flags always win.
func NewRootCmd() *cobra.Command {
	return newRootCmd(runMetronome)
}

func newRootCmd(run runFunc) *cobra.Command {
	cfg := config.Load()
	bpm := float64(cfg.Tempo)

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "An audible metronome for the terminal",
		Long: `tick loops a synthesized click at a tempo between 30 and 300 BPM.

Type a tempo to retune the running loop, press enter to apply it to the
field and space to start or stop. Without a terminal on stdin (or with
--no-tui) commands are read line by line instead:

  start | stop | toggle | <bpm> | status | quit

Example:
  tick --tempo 96
  echo "start" | tick --no-tui`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Tempo = tempo.BPM(bpm)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	cmd.Version = version.Version
	cmd.SetVersionTemplate(version.Product + " version {{.Version}}\n")

	flags := cmd.Flags()
	flags.Float64VarP(&bpm, "tempo", "t", bpm, "Initial tempo in BPM (30-300)")
	flags.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate in Hz")
	flags.IntVar(&cfg.Volume, "volume", cfg.Volume, "Output volume (0-100)")
	flags.BoolVar(&cfg.Autostart, "autostart", cfg.Autostart, "Start clicking immediately instead of waiting for start")
	flags.BoolVar(&cfg.NoTUI, "no-tui", cfg.NoTUI, "Disable TUI, read commands from stdin")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
