package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-shellwords"

	"github.com/mfridman/console/internal/ctxlog"
	"github.com/mfridman/console/pkg/termio"
)

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run parses args, resolves the command they name and invokes its handler. It returns the exit
// status for the process.
//
// Mistakes on the command line are not errors: an unknown command prints a message and usage to
// Stderr and returns [ExitFailure]; input that does not match the command's definition does the
// same and returns [ExitUsage]. A help request prints usage to Stdout and returns [ExitSuccess].
//
// An error returned by a handler is returned as a [HandlerExecutionError], together with the
// handler's status, which is forced to [ExitFailure] if the handler reported success.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func (a *Application) Run(ctx context.Context, args []string, options *RunOptions) (int, error) {
	options = checkAndSetRunOptions(options)
	stdout, stderr := termio.New(options.Stdout), termio.New(options.Stderr)

	res, err := a.Resolve(args)
	if err != nil {
		return a.recover(err, stderr)
	}
	if res.Help {
		if err := a.writeUsage(stdout, res.Command); err != nil {
			return ExitFailure, err
		}
		return ExitSuccess, nil
	}

	cmd := res.Command
	handler := cmd.Handler()
	if IsDefaultHandler(handler) && cmd.HasSubCommands() {
		if err := a.writeUsage(stdout, cmd); err != nil {
			return ExitFailure, err
		}
		return ExitSuccess, nil
	}

	state := &State{
		Input:       res.Input,
		Stdin:       options.Stdin,
		Stdout:      options.Stdout,
		Stderr:      options.Stderr,
		Output:      stdout,
		ErrorOutput: stderr,
		command:     cmd,
		logger:      a.logger,
	}
	a.logger.DebugContext(ctx, "dispatching", slogPath(cmd), "handler", fmt.Sprintf("%T", handler))

	code, err := handler.Handle(ctxlog.WithLogger(ctx, a.logger), state)
	if err != nil {
		if code == ExitSuccess {
			code = ExitFailure
		}
		return code, &HandlerExecutionError{Command: cmd.FullName(), Err: err}
	}
	return code, nil
}

// RunString splits line the way a POSIX shell would, honoring quotes and escapes, and runs the
// resulting arguments. See [Application.Run].
func (a *Application) RunString(ctx context.Context, line string, options *RunOptions) (int, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return ExitUsage, fmt.Errorf("failed to split command line: %w", err)
	}
	return a.Run(ctx, args, options)
}

// recover turns command line mistakes into a message, usage text and an exit status.
func (a *Application) recover(err error, stderr termio.IO) (int, error) {
	var (
		notFound *CommandNotFoundError
		invalid  *InvalidArgumentError
	)
	switch {
	case errors.As(err, &notFound):
		a.logger.Debug("command not found", "name", notFound.Name, "path", notFound.Path)
		var parent *Command
		if len(notFound.Path) > 0 {
			parent, _ = a.CommandByPath(notFound.Path...)
		}
		return ExitFailure, a.writeError(stderr, err, parent)
	case errors.As(err, &invalid):
		a.logger.Debug("invalid arguments", "error", invalid.Err)
		return ExitUsage, a.writeError(stderr, err, invalid.command)
	default:
		return ExitFailure, err
	}
}

func (a *Application) writeError(out termio.IO, err error, cmd *Command) error {
	if werr := out.WriteLine("error: " + err.Error()); werr != nil {
		return werr
	}
	if werr := out.WriteLine(""); werr != nil {
		return werr
	}
	return a.writeUsage(out, cmd)
}

func checkAndSetRunOptions(options *RunOptions) *RunOptions {
	opt := &RunOptions{}
	if options != nil {
		*opt = *options
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}
