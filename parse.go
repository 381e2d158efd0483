package console

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mfridman/xflag"

	"github.com/mfridman/console/pkg/suggest"
)

// Resolution is the outcome of resolving a command line against an application.
type Resolution struct {
	// Command is the resolved command. It is nil when the command line names no command and the
	// application has no default command.
	Command *Command
	// Input holds the bound arguments and options. It is nil when Help is set.
	Input *Input
	// Help is set when the command line asks for help, or names no command at all. Input is not
	// bound in that case, so missing required arguments do not prevent help from being shown.
	Help bool
}

// Resolve maps a raw argument vector, typically os.Args[1:], to a command and its bound input.
//
// Leading positional tokens are consumed as command names for as long as they name a sub-command
// of the command resolved so far, up to [ApplicationConfig.MaxCommandDepth]. Option tokens may be
// interleaved with command names. Everything after a "--" token is treated as positional.
//
// Resolve returns a [CommandNotFoundError] for an unknown command and an [InvalidArgumentError]
// when the remaining tokens do not satisfy the command's effective input definition.
func (a *Application) Resolve(args []string) (*Resolution, error) {
	argsToParse, afterDelimiter, hasDelimiter := splitAtDelimiter(args)

	cmd, rest, err := a.resolveCommand(argsToParse)
	if containsHelp(argsToParse) {
		return &Resolution{Command: cmd, Help: true}, nil
	}
	if err != nil {
		return nil, err
	}

	def := a.config.base
	if cmd != nil {
		def = cmd.Definition()
	}
	tokens := slices.Clone(rest)
	if hasDelimiter {
		tokens = append(append(tokens, "--"), afterDelimiter...)
	}
	input, err := bindInput(def, rest, afterDelimiter, tokens)
	if err != nil {
		name := a.config.name
		if cmd != nil {
			name = cmd.FullName()
		}
		return nil, &InvalidArgumentError{Command: name, Err: err, command: cmd}
	}
	if cmd == nil {
		return &Resolution{Help: true}, nil
	}
	a.logger.Debug("resolved command",
		slogPath(cmd),
		"arguments", len(input.arguments),
		"options", len(input.givenOpts),
	)
	return &Resolution{Command: cmd, Input: input}, nil
}

// resolveCommand walks the command tree along the positional tokens of args. It returns the
// deepest command reached and the tokens left once command names are removed. On a
// [CommandNotFoundError] the returned command is the last one resolved, which may be nil.
func (a *Application) resolveCommand(args []string) (*Command, []string, error) {
	var (
		current *Command
		depth   int
		stopped bool
	)
	maxDepth := a.config.maxDepth
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if isOptionToken(arg) {
			rest = append(rest, arg)
			if a.optionConsumesNext(current, arg) && i+1 < len(args) {
				i++
				rest = append(rest, args[i])
			}
			continue
		}
		if stopped || (maxDepth > 0 && depth >= maxDepth) {
			stopped = true
			rest = append(rest, arg)
			continue
		}

		var candidates *CommandCollection
		if current == nil {
			candidates = a.commands
		} else {
			candidates = current.subCommands
		}
		if next, err := candidates.Get(arg); err == nil {
			current = next
			depth++
			continue
		}

		switch {
		case current == nil && a.defaultCommand != nil:
			current = a.defaultCommand
		case current == nil:
			return nil, nil, a.commandNotFound(nil, candidates, arg)
		case current.HasSubCommands() && len(current.Definition().arguments) == 0:
			return current, nil, a.commandNotFound(current, candidates, arg)
		}
		// The token is the first argument of the resolved command.
		stopped = true
		rest = append(rest, arg)
	}

	if current == nil {
		current = a.defaultCommand
	}
	return current, rest, nil
}

func (a *Application) optionConsumesNext(current *Command, arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return false
	}
	def := a.config.base
	if current != nil {
		def = current.Definition()
	}
	opt, ok := def.Option(name)
	return ok && opt.Mode.takesValue()
}

func (a *Application) commandNotFound(parent *Command, candidates *CommandCollection, name string) error {
	var known []string
	for _, cmd := range candidates.All() {
		if !cmd.config.hidden {
			known = append(known, cmd.Name())
		}
	}
	err := &CommandNotFoundError{
		Name:        name,
		Suggestions: suggest.FindSimilar(name, known, 3),
	}
	if parent != nil {
		err.Path = parent.Path()
	}
	return err
}

// bindInput parses tokens against def. Options and arguments may be interleaved; every token in
// afterDelimiter is positional.
func bindInput(def *InputDefinition, args, afterDelimiter, tokens []string) (*Input, error) {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.Usage = func() {}

	values := make([]*optionValue, 0, len(def.options))
	for _, opt := range def.options {
		v := &optionValue{opt: opt}
		values = append(values, v)
		fset.Var(v, opt.Name, opt.Description)
		if opt.ShortName != "" {
			fset.Var(v, opt.ShortName, opt.Description)
		}
	}

	if err := xflag.ParseToEnd(fset, expandBareOptional(def, args)); err != nil {
		return nil, err
	}

	input := newInput(def, tokens)
	var missingOptions []string
	for _, v := range values {
		name := v.opt.Name
		switch {
		case v.set:
			input.options[name] = v.values
			input.givenOpts[name] = true
		case v.opt.IsRequired():
			missingOptions = append(missingOptions, "--"+name)
		case v.opt.Mode == ValueMultiple:
			input.options[name] = append([]string(nil), v.opt.Defaults...)
		case v.opt.Default != "":
			input.options[name] = []string{v.opt.Default}
		}
	}
	if len(missingOptions) > 0 {
		return nil, fmt.Errorf("required options %q not set", strings.Join(missingOptions, ", "))
	}

	positional := append(fset.Args(), afterDelimiter...)
	var missingArgs []string
	for _, arg := range def.arguments {
		if arg.IsMultiple() {
			switch {
			case len(positional) > 0:
				input.arguments[arg.Name] = positional
				input.givenArgs[arg.Name] = true
				positional = nil
			case arg.IsRequired():
				missingArgs = append(missingArgs, arg.Name)
			default:
				input.arguments[arg.Name] = append([]string(nil), arg.Defaults...)
			}
			break
		}
		switch {
		case len(positional) > 0:
			input.arguments[arg.Name] = []string{positional[0]}
			input.givenArgs[arg.Name] = true
			positional = positional[1:]
		case arg.IsRequired():
			missingArgs = append(missingArgs, arg.Name)
		case arg.Default != "":
			input.arguments[arg.Name] = []string{arg.Default}
		}
	}
	if len(missingArgs) > 0 {
		return nil, fmt.Errorf("missing required arguments %q", strings.Join(missingArgs, ", "))
	}
	if len(positional) > 0 {
		return nil, fmt.Errorf("too many arguments: %q", strings.Join(positional, " "))
	}
	return input, nil
}

// optionValue collects the occurrences of one option. It is registered under both the long and
// the short name.
type optionValue struct {
	opt    *Option
	values []string
	set    bool
}

func (v *optionValue) String() string {
	if v == nil {
		return ""
	}
	return strings.Join(v.values, ",")
}

func (v *optionValue) Set(s string) error {
	switch v.opt.Mode {
	case ValueNone:
		on, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("option %q does not accept a value", v.opt.Name)
		}
		if !on {
			v.values, v.set = nil, false
			return nil
		}
		v.values = []string{"true"}
	case ValueMultiple:
		v.values = append(v.values, s)
	default:
		v.values = []string{s}
	}
	v.set = true
	return nil
}

// IsBoolFlag lets switches appear without a value.
func (v *optionValue) IsBoolFlag() bool {
	return v.opt.Mode == ValueNone
}

// expandBareOptional rewrites bare occurrences of optional-value options into the --name=default
// form, so the flag parser never takes the following token as their value.
func expandBareOptional(def *InputDefinition, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !isOptionToken(arg) || strings.Contains(arg, "=") {
			out = append(out, arg)
			continue
		}
		opt, ok := def.Option(strings.TrimLeft(arg, "-"))
		switch {
		case !ok:
			out = append(out, arg)
		case opt.Mode == ValueOptional:
			out = append(out, "--"+opt.Name+"="+opt.Default)
		case opt.Mode.takesValue() && i+1 < len(args):
			// Keep the value with its option, even if it looks like a bare optional option.
			out = append(out, arg, args[i+1])
			i++
		default:
			out = append(out, arg)
		}
	}
	return out
}

func splitAtDelimiter(args []string) (before, after []string, found bool) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i:i], args[i+1:], true
		}
	}
	return args, nil, false
}

func containsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--h", "-help", "--help":
			return true
		}
	}
	return false
}

func isOptionToken(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}
