package console

import (
	"strings"
)

// Command is the runtime view of a [CommandConfig] bound to the [Application] running it.
type Command struct {
	config      *CommandConfig
	app         *Application
	parent      *Command
	subCommands *CommandCollection
}

func newCommand(cfg *CommandConfig, app *Application, parent *Command) (*Command, error) {
	cmd := &Command{
		config:      cfg,
		app:         app,
		parent:      parent,
		subCommands: NewCommandCollection(),
	}
	for _, subCfg := range cfg.subCommands {
		sub, err := newCommand(subCfg, app, cmd)
		if err != nil {
			return nil, err
		}
		if err := cmd.subCommands.Add(sub); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

// Name returns the command name.
func (c *Command) Name() string { return c.config.name }

// Config returns the command configuration.
func (c *Command) Config() *CommandConfig { return c.config }

// Application returns the application the command belongs to.
func (c *Command) Application() *Application { return c.app }

// Parent returns the parent command, or nil for a top-level command.
func (c *Command) Parent() *Command { return c.parent }

// SubCommands returns the sub-commands of the command.
func (c *Command) SubCommands() *CommandCollection { return c.subCommands }

// SubCommand returns the sub-command with the given name or alias.
func (c *Command) SubCommand(name string) (*Command, error) {
	return c.subCommands.Get(name)
}

// HasSubCommands reports whether the command has sub-commands.
func (c *Command) HasSubCommands() bool { return !c.subCommands.IsEmpty() }

// Definition returns the effective input definition of the command.
func (c *Command) Definition() *InputDefinition { return c.config.effective }

// Path returns the names from the top-level command down to this one.
func (c *Command) Path() []string { return c.config.Path() }

// FullName returns the application name followed by the command path, as typed by a user.
func (c *Command) FullName() string {
	return c.app.config.name + " " + strings.Join(c.Path(), " ")
}

// Handler resolves the handler servicing this command.
func (c *Command) Handler() Handler { return c.config.Handler(c) }
