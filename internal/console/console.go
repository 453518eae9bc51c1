// ABOUTME: Line-oriented control surface for headless use
// ABOUTME: Maps stdin commands onto toggle, retune and commit
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/tick/pkg/metronome"
	"github.com/harperreed/tick/pkg/tempo"
)

// Controller is the part of the engine the console drives
type Controller interface {
	Toggle() (metronome.PlaybackState, error)
	Retune(input string) tempo.BPM
	CommitDisplayTempo() string
	State() metronome.PlaybackState
	Stats() metronome.Stats
}

// Console reads commands from in and reports to out
type Console struct {
	engine Controller
	in     io.Reader
	out    io.Writer
}

// New creates a console bound to an engine
func New(engine Controller, in io.Reader, out io.Writer) *Console {
	return &Console{engine: engine, in: in, out: out}
}

// Run processes commands until quit, EOF or ctx is done
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	c.printf("tick: %s at %s BPM (type start, stop, a tempo, status or quit)", c.engine.State(), c.engine.CommitDisplayTempo())

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case line := <-lines:
			if !c.Handle(line) {
				return nil
			}
		}
	}
}

// Handle executes one command line. It returns false when the user quits.
func (c *Console) Handle(line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
		return true
	case "q", "quit", "exit":
		return false
	case "toggle", "t":
		c.toggle()
	case "start":
		if c.engine.State() == metronome.Running {
			c.printf("already running")
			return true
		}
		c.toggle()
	case "stop":
		if c.engine.State() != metronome.Running {
			c.printf("already stopped")
			return true
		}
		c.toggle()
	case "status":
		stats := c.engine.Stats()
		c.printf("%s at %s BPM, loop end %.4fs, %d cycles", stats.State, stats.Tempo, stats.LoopEnd, stats.Cycles)
	default:
		applied := c.engine.Retune(cmd)
		if _, err := tempo.Parse(cmd); err != nil {
			c.printf("not a tempo: %q (keeping %s BPM)", line, applied)
			return true
		}
		c.printf("tempo %s BPM", c.engine.CommitDisplayTempo())
	}

	return true
}

func (c *Console) toggle() {
	state, err := c.engine.Toggle()
	if err != nil {
		c.printf("audio unavailable (%v), try again", err)
		return
	}
	c.printf("%s", state)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
