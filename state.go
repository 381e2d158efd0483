package console

import (
	"io"
	"log/slog"

	"github.com/mfridman/console/pkg/termio"
)

// State is what a handler receives for one invocation: the bound input, the standard streams and
// the command being run.
type State struct {
	// Input holds the parsed arguments and options.
	Input *Input

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Output and ErrorOutput wrap Stdout and Stderr with terminal size detection, for handlers
	// that render paragraphs or tables.
	Output, ErrorOutput termio.IO

	command *Command
	logger  *slog.Logger
}

// Command returns the command being run. For a handler inherited from a parent command this is
// still the command that was invoked.
func (s *State) Command() *Command { return s.command }

// Logger returns the application logger.
func (s *State) Logger() *slog.Logger { return s.logger }
