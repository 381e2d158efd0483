package console

import (
	"log/slog"

	"github.com/mfridman/console/internal/ctxlog"
)

// Application is a runnable console application: the command tree built from an
// [ApplicationConfig], plus the Run entry point that parses a command line and dispatches it.
//
// An Application holds no per-invocation state, so Run may be called any number of times.
type Application struct {
	config         *ApplicationConfig
	commands       *CommandCollection
	defaultCommand *Command
	logger         *slog.Logger
}

// NewApplication binds the commands of cfg into an application.
func NewApplication(cfg *ApplicationConfig) (*Application, error) {
	if cfg == nil {
		return nil, configErrorf("application config is nil")
	}
	app := &Application{
		config:   cfg,
		commands: NewCommandCollection(),
		logger:   cfg.logger,
	}
	if app.logger == nil {
		app.logger = ctxlog.Discard()
	}
	for _, cmdCfg := range cfg.commands {
		cmd, err := newCommand(cmdCfg, app, nil)
		if err != nil {
			return nil, err
		}
		if err := app.commands.Add(cmd); err != nil {
			return nil, err
		}
	}
	if cfg.defaultCommand != "" {
		cmd, err := app.commands.Get(cfg.defaultCommand)
		if err != nil {
			return nil, configErrorf("default command %q is not a top-level command", cfg.defaultCommand)
		}
		app.defaultCommand = cmd
	}
	return app, nil
}

// Config returns the application configuration.
func (a *Application) Config() *ApplicationConfig { return a.config }

// BaseDefinition returns the global input definition inherited by every command.
func (a *Application) BaseDefinition() *InputDefinition { return a.config.base }

// Command returns the top-level command with the given name or alias.
func (a *Application) Command(name string) (*Command, error) { return a.commands.Get(name) }

// Commands returns the top-level commands.
func (a *Application) Commands() *CommandCollection { return a.commands }

// HasCommand reports whether a top-level command with the given name or alias exists.
func (a *Application) HasCommand(name string) bool { return a.commands.Has(name) }

// HasCommands reports whether the application has any top-level commands.
func (a *Application) HasCommands() bool { return !a.commands.IsEmpty() }

// Logger returns the application logger. It is never nil.
func (a *Application) Logger() *slog.Logger { return a.logger }

// CommandByPath returns the command reached by following path from the top level.
func (a *Application) CommandByPath(path ...string) (*Command, error) {
	if len(path) == 0 {
		return nil, &NotFoundError{Kind: "command", Name: ""}
	}
	cmd, err := a.commands.Get(path[0])
	if err != nil {
		return nil, err
	}
	for _, name := range path[1:] {
		if cmd, err = cmd.SubCommand(name); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func slogPath(cmd *Command) slog.Attr {
	return slog.Any("command", cmd.Path())
}
