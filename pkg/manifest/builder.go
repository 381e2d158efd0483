package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/mfridman/console"
)

// Handlers maps the handler names used in a manifest to their implementation.
type Handlers map[string]console.HandlerSource

// Builder turns the manifest into an application builder. The builder may be extended in code
// before it is built, for example to add a logger.
func (m *Manifest) Builder(handlers Handlers) (*console.ApplicationBuilder, error) {
	b := console.NewApplicationBuilder(m.Name).
		SetDisplayName(m.DisplayName).
		SetVersion(m.Version).
		SetDescription(m.Description).
		SetDefaultCommand(m.DefaultCommand).
		SetMaxCommandDepth(m.MaxCommandDepth)

	if err := addInputs(b.BaseDefinition(), m.Options, m.Arguments); err != nil {
		return nil, err
	}
	for _, c := range m.Commands {
		cb, err := c.builder(handlers, nil)
		if err != nil {
			return nil, err
		}
		if err := b.AddCommand(cb); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (c *Command) builder(handlers Handlers, path []string) (*console.CommandBuilder, error) {
	path = append(slices.Clip(path), c.Name)
	wrap := func(err error) error {
		return fmt.Errorf("command %q: %w", strings.Join(path, " "), err)
	}

	b := console.NewCommandBuilder(c.Name).
		SetDescription(c.Description).
		SetHelp(c.Help).
		SetHidden(c.Hidden)
	for _, alias := range c.Aliases {
		b.AddAlias(alias)
	}
	if c.Inherit != nil {
		b.InheritParentDefinition(*c.Inherit)
	}
	if c.Handler != "" {
		src, ok := handlers[c.Handler]
		if !ok || src.IsZero() {
			return nil, wrap(fmt.Errorf("unknown handler %q", c.Handler))
		}
		b.SetHandler(src)
	}
	if err := addInputs(b.Definition(), c.Options, c.Arguments); err != nil {
		return nil, wrap(err)
	}
	for _, sub := range c.Commands {
		sb, err := sub.builder(handlers, path)
		if err != nil {
			return nil, err
		}
		if err := b.AddSubCommand(sb); err != nil {
			return nil, wrap(err)
		}
	}
	return b, nil
}

func addInputs(def *console.InputDefinition, opts []*Option, args []*Argument) error {
	for _, o := range opts {
		opt, err := o.option()
		if err != nil {
			return fmt.Errorf("option %q: %w", o.Name, err)
		}
		if err := def.AddOption(opt); err != nil {
			return err
		}
	}
	for _, a := range args {
		arg, err := a.argument()
		if err != nil {
			return fmt.Errorf("argument %q: %w", a.Name, err)
		}
		if err := def.AddArgument(arg); err != nil {
			return err
		}
	}
	return nil
}

var modes = []console.OptionMode{
	console.ValueNone,
	console.ValueOptional,
	console.ValueRequired,
	console.ValueMultiple,
}

func parseMode(s string) (console.OptionMode, error) {
	if s == "" {
		return console.ValueNone, nil
	}
	for _, m := range modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q: want none, optional, required or multiple", s)
}

func (o *Option) option() (console.Option, error) {
	mode, err := parseMode(o.Mode)
	if err != nil {
		return console.Option{}, err
	}
	opt := console.Option{
		Name:        o.Name,
		ShortName:   o.Short,
		Mode:        mode,
		Description: o.Description,
	}
	if o.Required {
		opt.Flags |= console.OptionRequired
	}
	opt.Default, opt.Defaults, err = defaults(o.Default, mode == console.ValueMultiple)
	return opt, err
}

func (a *Argument) argument() (console.Argument, error) {
	arg := console.Argument{
		Name:        a.Name,
		Description: a.Description,
	}
	if a.Required {
		arg.Flags |= console.ArgumentRequired
	}
	if a.Multiple {
		arg.Flags |= console.ArgumentMultiple
	}
	var err error
	arg.Default, arg.Defaults, err = defaults(a.Default, a.Multiple)
	return arg, err
}

// defaults converts a declared default into the string form the console package stores. Lists
// are only accepted for multi-valued inputs; a scalar given to a multi-valued input becomes a
// single element list.
func defaults(v *cty.Value, multiple bool) (string, []string, error) {
	if v == nil || v.IsNull() {
		return "", nil, nil
	}
	val := *v
	if !val.IsWhollyKnown() {
		return "", nil, errors.New("default must be a constant")
	}
	ty := val.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		if !multiple {
			return "", nil, errors.New("a list default requires a multi-valued input")
		}
		out := make([]string, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := ctyString(ev)
			if err != nil {
				return "", nil, err
			}
			out = append(out, s)
		}
		return "", out, nil
	}
	s, err := ctyString(val)
	if err != nil {
		return "", nil, err
	}
	if multiple {
		return "", []string{s}, nil
	}
	return s, nil, nil
}

func ctyString(v cty.Value) (string, error) {
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("default must be a string, number or bool: %w", err)
	}
	if sv.IsNull() {
		return "", errors.New("default must not be null")
	}
	return sv.AsString(), nil
}
