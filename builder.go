package console

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// HelpOption is the global switch that prints usage for the resolved command.
var HelpOption = Option{
	Name:        "help",
	ShortName:   "h",
	Mode:        ValueNone,
	Description: "Display help for the command",
}

// ApplicationBuilder collects the declarations of an application. It is mutable; [Build] turns it
// into an immutable [ApplicationConfig] consumed by [NewApplication].
type ApplicationBuilder struct {
	name           string
	displayName    string
	version        string
	description    string
	defaultCommand string
	maxDepth       int
	logger         *slog.Logger
	base           *InputDefinition
	commands       []*CommandBuilder
}

// NewApplicationBuilder returns a builder for an application called name. The base definition
// starts with [HelpOption].
func NewApplicationBuilder(name string) *ApplicationBuilder {
	base := NewInputDefinition()
	_ = base.AddOption(HelpOption)
	return &ApplicationBuilder{
		name: name,
		base: base,
	}
}

// SetDisplayName sets the human readable name shown in help output.
func (b *ApplicationBuilder) SetDisplayName(name string) *ApplicationBuilder {
	b.displayName = name
	return b
}

// SetVersion sets the version shown in help output.
func (b *ApplicationBuilder) SetVersion(version string) *ApplicationBuilder {
	b.version = version
	return b
}

// SetDescription sets the text shown at the top of the application help.
func (b *ApplicationBuilder) SetDescription(description string) *ApplicationBuilder {
	b.description = description
	return b
}

// SetDefaultCommand names the top-level command to run when the command line names none.
func (b *ApplicationBuilder) SetDefaultCommand(name string) *ApplicationBuilder {
	b.defaultCommand = name
	return b
}

// SetMaxCommandDepth bounds how many leading positional tokens may be consumed as command names.
// Zero, the default, means no bound: sub-command names are consumed for as long as they match.
func (b *ApplicationBuilder) SetMaxCommandDepth(depth int) *ApplicationBuilder {
	b.maxDepth = depth
	return b
}

// SetLogger sets the logger used for framework diagnostics. By default nothing is logged.
func (b *ApplicationBuilder) SetLogger(logger *slog.Logger) *ApplicationBuilder {
	b.logger = logger
	return b
}

// BaseDefinition returns the global input definition inherited by every command.
func (b *ApplicationBuilder) BaseDefinition() *InputDefinition {
	return b.base
}

// AddOption declares a global option available to every command.
func (b *ApplicationBuilder) AddOption(opt Option) error {
	return b.base.AddOption(opt)
}

// AddArgument declares a global argument. Global arguments come before the arguments of every
// command.
func (b *ApplicationBuilder) AddArgument(arg Argument) error {
	return b.base.AddArgument(arg)
}

// AddCommand registers a top-level command. It returns a [DuplicateNameError] if the name or one
// of the aliases is already used by another top-level command.
func (b *ApplicationBuilder) AddCommand(cmd *CommandBuilder) error {
	if cmd == nil {
		return configErrorf("command is nil")
	}
	if err := checkSiblingNames(b.commands, cmd); err != nil {
		return err
	}
	b.commands = append(b.commands, cmd)
	return nil
}

// Build validates the declarations and returns the frozen configuration. Every command's
// effective input definition is computed here, so conflicting declarations are reported now and
// never while running. The builder may be modified and built again; configs already built are
// not affected.
func (b *ApplicationBuilder) Build() (*ApplicationConfig, error) {
	if err := validateCommandName(b.name, nil); err != nil {
		return nil, fmt.Errorf("application: %w", err)
	}
	app := &ApplicationConfig{
		name:           b.name,
		displayName:    b.displayName,
		version:        b.version,
		description:    b.description,
		defaultCommand: b.defaultCommand,
		maxDepth:       b.maxDepth,
		logger:         b.logger,
		base:           b.base.Clone(),
	}
	if app.maxDepth < 0 {
		return nil, configErrorf("max command depth %d is negative", app.maxDepth)
	}
	var errs []error
	seen := make(map[string]bool)
	for _, cb := range b.commands {
		cfg, err := cb.build(app, nil, nil, nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, name := range append([]string{cfg.name}, cfg.aliases...) {
			if seen[name] {
				errs = append(errs, &DuplicateNameError{Kind: "command", Name: name})
			}
			seen[name] = true
		}
		app.commands = append(app.commands, cfg)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if app.defaultCommand != "" {
		if _, err := app.CommandConfig(app.defaultCommand); err != nil {
			return nil, configErrorf("default command %q is not a top-level command", app.defaultCommand)
		}
	}
	return app, nil
}

// CommandBuilder collects the declarations of one command and its sub-commands.
type CommandBuilder struct {
	name        string
	aliases     []string
	description string
	help        string
	hidden      bool
	noInherit   bool
	callback    Callback
	handler     HandlerSource
	definition  *InputDefinition
	subCommands []*CommandBuilder
}

// NewCommandBuilder returns a builder for a command called name.
func NewCommandBuilder(name string) *CommandBuilder {
	return &CommandBuilder{
		name:       name,
		definition: NewInputDefinition(),
	}
}

// Name returns the command name.
func (b *CommandBuilder) Name() string { return b.name }

// SetDescription sets the one line summary shown in command listings.
func (b *CommandBuilder) SetDescription(description string) *CommandBuilder {
	b.description = description
	return b
}

// SetHelp sets the long help text shown in the command's own help.
func (b *CommandBuilder) SetHelp(help string) *CommandBuilder {
	b.help = help
	return b
}

// AddAlias adds an alternative name for the command.
func (b *CommandBuilder) AddAlias(alias string) *CommandBuilder {
	b.aliases = append(b.aliases, alias)
	return b
}

// SetHidden hides the command from listings. Hidden commands can still be run.
func (b *CommandBuilder) SetHidden(hidden bool) *CommandBuilder {
	b.hidden = hidden
	return b
}

// InheritParentDefinition controls whether a sub-command accepts the arguments and options of its
// parent commands. It is enabled by default. Global options are always inherited.
func (b *CommandBuilder) InheritParentDefinition(inherit bool) *CommandBuilder {
	b.noInherit = !inherit
	return b
}

// SetCallback sets the function run when the command is invoked. A handler set with
// [CommandBuilder.SetHandler] takes precedence.
func (b *CommandBuilder) SetCallback(fn Callback) *CommandBuilder {
	b.callback = fn
	return b
}

// SetHandler sets the handler run when the command is invoked.
func (b *CommandBuilder) SetHandler(src HandlerSource) *CommandBuilder {
	b.handler = src
	return b
}

// Definition returns the command's own input definition.
func (b *CommandBuilder) Definition() *InputDefinition {
	return b.definition
}

// AddArgument declares a positional argument of this command.
func (b *CommandBuilder) AddArgument(arg Argument) error {
	return b.definition.AddArgument(arg)
}

// AddOption declares an option of this command.
func (b *CommandBuilder) AddOption(opt Option) error {
	return b.definition.AddOption(opt)
}

// AddSubCommand nests sub under this command. It returns a [DuplicateNameError] if the name or one
// of the aliases is already used by a sibling.
func (b *CommandBuilder) AddSubCommand(sub *CommandBuilder) error {
	if sub == nil {
		return configErrorf("command %q: sub-command is nil", b.name)
	}
	if sub == b {
		return configErrorf("command %q cannot be its own sub-command", b.name)
	}
	if err := checkSiblingNames(b.subCommands, sub); err != nil {
		return err
	}
	b.subCommands = append(b.subCommands, sub)
	return nil
}

// build freezes b under parent. ancestors holds the builders on the path to b, so a builder
// nested inside its own sub-tree is reported instead of recursing forever.
func (b *CommandBuilder) build(app *ApplicationConfig, parent *CommandConfig, path []string, ancestors []*CommandBuilder) (*CommandConfig, error) {
	if err := validateCommandName(b.name, path); err != nil {
		return nil, err
	}
	if slices.Contains(ancestors, b) {
		return nil, configErrorf("command %q is nested inside itself in path %q", b.name, strings.Join(path, " "))
	}
	ancestors = append(slices.Clip(ancestors), b)
	for _, alias := range b.aliases {
		if err := validateCommandName(alias, path); err != nil {
			return nil, fmt.Errorf("alias of %q: %w", b.name, err)
		}
	}
	currentPath := append(slices.Clone(path), b.name)
	cfg := &CommandConfig{
		name:        b.name,
		aliases:     slices.Clone(b.aliases),
		description: b.description,
		help:        b.help,
		hidden:      b.hidden,
		inherit:     !b.noInherit,
		callback:    b.callback,
		handler:     b.handler,
		definition:  b.definition.Clone(),
		parent:      parent,
		app:         app,
		subIndex:    make(map[string]*CommandConfig),
	}

	levels := []*InputDefinition{app.base}
	if cfg.inherit && parent != nil {
		levels = append(levels, parent.effective)
	}
	levels = append(levels, cfg.definition)
	effective, err := MergeDefinitions(levels...)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", strings.Join(currentPath, " "), err)
	}
	cfg.effective = effective

	for _, sb := range b.subCommands {
		sub, err := sb.build(app, cfg, currentPath, ancestors)
		if err != nil {
			return nil, err
		}
		cfg.subCommands = append(cfg.subCommands, sub)
		for _, name := range append([]string{sub.name}, sub.aliases...) {
			if _, ok := cfg.subIndex[name]; ok {
				return nil, &DuplicateNameError{Kind: "command", Name: name}
			}
			cfg.subIndex[name] = sub
		}
	}
	return cfg, nil
}

func checkSiblingNames(siblings []*CommandBuilder, cmd *CommandBuilder) error {
	taken := make(map[string]bool)
	for _, s := range siblings {
		taken[s.name] = true
		for _, a := range s.aliases {
			taken[a] = true
		}
	}
	for _, name := range append([]string{cmd.name}, cmd.aliases...) {
		if taken[name] {
			return &DuplicateNameError{Kind: "command", Name: name}
		}
	}
	return nil
}

func validateCommandName(name string, path []string) error {
	if name == "" {
		if len(path) == 0 {
			return configErrorf("command has no name")
		}
		return configErrorf("command in path %q has no name", strings.Join(path, " "))
	}
	if strings.ContainsAny(name, " \t\n") {
		return configErrorf("command name %q contains spaces, must be a single word", name)
	}
	if strings.HasPrefix(name, "-") {
		return configErrorf("command name %q must not start with a dash", name)
	}
	return nil
}
