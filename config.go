package console

import (
	"log/slog"
	"slices"
)

// ApplicationConfig is the frozen configuration of an application, produced by
// [ApplicationBuilder.Build]. It is never modified after it is built.
type ApplicationConfig struct {
	name           string
	displayName    string
	version        string
	description    string
	defaultCommand string
	maxDepth       int
	logger         *slog.Logger
	base           *InputDefinition
	commands       []*CommandConfig
}

// Name returns the application name, the first word of every usage line.
func (c *ApplicationConfig) Name() string { return c.name }

// DisplayName returns the display name, falling back to the name.
func (c *ApplicationConfig) DisplayName() string {
	if c.displayName != "" {
		return c.displayName
	}
	return c.name
}

// Version returns the version shown next to the display name in help output.
func (c *ApplicationConfig) Version() string { return c.version }

// Description returns the text shown at the top of the application help.
func (c *ApplicationConfig) Description() string { return c.description }

// DefaultCommand returns the name of the command run when none is given, or "".
func (c *ApplicationConfig) DefaultCommand() string { return c.defaultCommand }

// MaxCommandDepth returns the bound on consumed command names. Zero means unbounded.
func (c *ApplicationConfig) MaxCommandDepth() int { return c.maxDepth }

// Logger returns the configured logger, or nil if none was set.
func (c *ApplicationConfig) Logger() *slog.Logger { return c.logger }

// BaseDefinition returns the global input definition. The returned value must not be modified.
func (c *ApplicationConfig) BaseDefinition() *InputDefinition { return c.base }

// CommandConfigs returns the top-level command configurations in declaration order.
func (c *ApplicationConfig) CommandConfigs() []*CommandConfig {
	return slices.Clone(c.commands)
}

// CommandConfig returns the top-level command configuration with the given name or alias.
func (c *ApplicationConfig) CommandConfig(name string) (*CommandConfig, error) {
	for _, cmd := range c.commands {
		if cmd.matches(name) {
			return cmd, nil
		}
	}
	return nil, &NotFoundError{Kind: "command", Name: name}
}

// CommandConfig is the frozen configuration of one command. Top-level commands have no parent
// config; sub-commands always have one.
type CommandConfig struct {
	name        string
	aliases     []string
	description string
	help        string
	hidden      bool
	inherit     bool
	callback    Callback
	handler     HandlerSource

	// definition is what the command declares itself; effective adds everything inherited.
	definition *InputDefinition
	effective  *InputDefinition

	parent      *CommandConfig
	app         *ApplicationConfig
	subCommands []*CommandConfig
	subIndex    map[string]*CommandConfig
}

// Name returns the command name.
func (c *CommandConfig) Name() string { return c.name }

// Description returns the one line summary shown in command listings.
func (c *CommandConfig) Description() string { return c.description }

// Help returns the long help text. Usage falls back to the description when it is empty.
func (c *CommandConfig) Help() string { return c.help }

// IsHidden reports whether the command is left out of listings and suggestions.
func (c *CommandConfig) IsHidden() bool { return c.hidden }

// Aliases returns the alternative names of the command.
func (c *CommandConfig) Aliases() []string { return slices.Clone(c.aliases) }

// ParentConfig returns the configuration of the parent command, or nil for a top-level command.
func (c *CommandConfig) ParentConfig() *CommandConfig { return c.parent }

// ApplicationConfig returns the configuration of the application owning the command.
func (c *CommandConfig) ApplicationConfig() *ApplicationConfig { return c.app }

// InheritsParentDefinition reports whether the command accepts its parents' arguments and options.
func (c *CommandConfig) InheritsParentDefinition() bool { return c.inherit }

// Definition returns the arguments and options declared by the command itself. The returned value
// must not be modified.
func (c *CommandConfig) Definition() *InputDefinition { return c.definition }

// EffectiveDefinition returns the definition the command line is parsed against: global options,
// the parent chain's declarations if inherited, and the command's own, the most specific winning.
// The returned value must not be modified.
func (c *CommandConfig) EffectiveDefinition() *InputDefinition { return c.effective }

// SubCommandConfigs returns the sub-command configurations in declaration order.
func (c *CommandConfig) SubCommandConfigs() []*CommandConfig {
	return slices.Clone(c.subCommands)
}

// SubCommandConfig returns the sub-command configuration with the given name or alias. Lookups are
// case-sensitive.
func (c *CommandConfig) SubCommandConfig(name string) (*CommandConfig, error) {
	if sub, ok := c.subIndex[name]; ok {
		return sub, nil
	}
	return nil, &NotFoundError{Kind: "sub-command", Name: name}
}

// HasSubCommands reports whether the command has sub-commands.
func (c *CommandConfig) HasSubCommands() bool { return len(c.subCommands) > 0 }

// Path returns the names from the top-level command down to this one.
func (c *CommandConfig) Path() []string {
	var path []string
	for cfg := c; cfg != nil; cfg = cfg.parent {
		path = append(path, cfg.name)
	}
	slices.Reverse(path)
	return path
}

// Handler returns the handler that services cmd. The closest declaration wins: a handler set on
// this config, then a callback set on this config, then whatever the parent config resolves for
// the same cmd. Without any declaration in the chain the result is a no-op handler.
//
// cmd is bound into callback and runnable handlers as is, so a handler inherited from an ancestor
// still observes the command that was actually invoked.
func (c *CommandConfig) Handler(cmd *Command) Handler {
	if h := c.handler.bind(cmd); h != nil {
		return h
	}
	if c.callback != nil {
		return &CallbackHandler{command: cmd, callback: c.callback}
	}
	if c.parent != nil {
		return c.parent.Handler(cmd)
	}
	return &defaultHandler{command: cmd}
}

func (c *CommandConfig) matches(name string) bool {
	return c.name == name || slices.Contains(c.aliases, name)
}
