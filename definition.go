package console

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// ArgumentFlags describe how a positional argument is consumed.
type ArgumentFlags int

const (
	// ArgumentOptional is the default: the argument may be omitted.
	ArgumentOptional ArgumentFlags = 0
	// ArgumentRequired arguments must be present on the command line.
	ArgumentRequired ArgumentFlags = 1 << iota
	// ArgumentMultiple arguments collect every remaining positional token. Only the last argument
	// of a definition may be multi-valued.
	ArgumentMultiple
)

// OptionMode describes whether an option takes a value.
type OptionMode int

const (
	// ValueNone options are switches: present or absent.
	ValueNone OptionMode = iota
	// ValueOptional options may be given as a bare switch, in which case they take their default,
	// or with a value using the --name=value form.
	ValueOptional
	// ValueRequired options always take a value. Repeated occurrences overwrite each other.
	ValueRequired
	// ValueMultiple options take a value and may be repeated; values are collected in order.
	ValueMultiple
)

func (m OptionMode) String() string {
	switch m {
	case ValueNone:
		return "none"
	case ValueOptional:
		return "optional"
	case ValueRequired:
		return "required"
	case ValueMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// takesValue reports whether a bare occurrence consumes the following token.
func (m OptionMode) takesValue() bool {
	return m == ValueRequired || m == ValueMultiple
}

// OptionFlags hold additional constraints on an option.
type OptionFlags int

const (
	// OptionRequired options must appear on the command line.
	OptionRequired OptionFlags = 1 << iota
)

// Argument declares a positional input slot.
type Argument struct {
	Name        string
	Flags       ArgumentFlags
	Description string
	// Default is used when an optional, single-valued argument is omitted.
	Default string
	// Defaults is used when an optional, multi-valued argument is omitted.
	Defaults []string
}

// IsRequired reports whether the argument must be given.
func (a *Argument) IsRequired() bool { return a.Flags&ArgumentRequired != 0 }

// IsMultiple reports whether the argument collects all remaining tokens.
func (a *Argument) IsMultiple() bool { return a.Flags&ArgumentMultiple != 0 }

// Option declares a named input slot. Options are written as --name or -name; ShortName is an
// optional single character alias.
type Option struct {
	Name        string
	ShortName   string
	Mode        OptionMode
	Flags       OptionFlags
	Description string
	Default     string
	Defaults    []string
}

// IsRequired reports whether the option must be given.
func (o *Option) IsRequired() bool { return o.Flags&OptionRequired != 0 }

// InputDefinition is the schema of arguments and options a command accepts. Arguments are
// ordered; options are keyed by name and short name.
type InputDefinition struct {
	arguments []*Argument
	options   []*Option
}

// NewInputDefinition returns an empty definition.
func NewInputDefinition() *InputDefinition {
	return &InputDefinition{}
}

// AddArgument appends a positional argument. It returns a [DuplicateNameError] if an argument
// with the same name exists and a [ConfigurationError] if the argument cannot follow the ones
// already declared.
func (d *InputDefinition) AddArgument(arg Argument) error {
	if err := validateArgument(arg); err != nil {
		return err
	}
	if d.HasArgument(arg.Name) {
		return &DuplicateNameError{Kind: "argument", Name: arg.Name}
	}
	a := arg
	a.Defaults = slices.Clone(arg.Defaults)
	if err := checkArgumentOrder(append(slices.Clone(d.arguments), &a)); err != nil {
		return err
	}
	d.arguments = append(d.arguments, &a)
	return nil
}

// AddOption registers an option. It returns a [DuplicateNameError] if the name or short name is
// already taken by another option of this definition.
func (d *InputDefinition) AddOption(opt Option) error {
	if err := validateOption(opt); err != nil {
		return err
	}
	if d.HasOption(opt.Name) {
		return &DuplicateNameError{Kind: "option", Name: opt.Name}
	}
	if opt.ShortName != "" && d.HasOption(opt.ShortName) {
		return &DuplicateNameError{Kind: "short option", Name: opt.ShortName}
	}
	o := opt
	o.Defaults = slices.Clone(opt.Defaults)
	d.options = append(d.options, &o)
	return nil
}

// Argument returns the argument with the given name.
func (d *InputDefinition) Argument(name string) (*Argument, bool) {
	for _, a := range d.arguments {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Option returns the option with the given long or short name.
func (d *InputDefinition) Option(name string) (*Option, bool) {
	for _, o := range d.options {
		if o.Name == name || (o.ShortName != "" && o.ShortName == name) {
			return o, true
		}
	}
	return nil, false
}

// HasArgument reports whether an argument with the given name is declared.
func (d *InputDefinition) HasArgument(name string) bool {
	_, ok := d.Argument(name)
	return ok
}

// HasOption reports whether an option with the given long or short name is declared.
func (d *InputDefinition) HasOption(name string) bool {
	_, ok := d.Option(name)
	return ok
}

// Arguments returns the arguments in declaration order.
func (d *InputDefinition) Arguments() []*Argument {
	return slices.Clone(d.arguments)
}

// Options returns the options in declaration order.
func (d *InputDefinition) Options() []*Option {
	return slices.Clone(d.options)
}

// ArgumentNames returns the argument names in declaration order.
func (d *InputDefinition) ArgumentNames() []string {
	names := make([]string, 0, len(d.arguments))
	for _, a := range d.arguments {
		names = append(names, a.Name)
	}
	return names
}

// OptionNames returns the long option names in declaration order.
func (d *InputDefinition) OptionNames() []string {
	names := make([]string, 0, len(d.options))
	for _, o := range d.options {
		names = append(names, o.Name)
	}
	return names
}

// Clone returns a deep copy of d.
func (d *InputDefinition) Clone() *InputDefinition {
	c := &InputDefinition{
		arguments: make([]*Argument, 0, len(d.arguments)),
		options:   make([]*Option, 0, len(d.options)),
	}
	for _, a := range d.arguments {
		cp := *a
		cp.Defaults = slices.Clone(a.Defaults)
		c.arguments = append(c.arguments, &cp)
	}
	for _, o := range d.options {
		cp := *o
		cp.Defaults = slices.Clone(o.Defaults)
		c.options = append(c.options, &cp)
	}
	return c
}

// MergeDefinitions combines definitions ordered from least to most specific, for example the
// application's global options, then each ancestor command, then the command itself.
//
// A more specific option replaces an inherited one with the same name, keeping its position, as
// long as both use the same value mode. A more specific argument replaces an inherited one with
// the same name as long as both agree on multiplicity. Anything else is a [ConflictingNameError].
func MergeDefinitions(levels ...*InputDefinition) (*InputDefinition, error) {
	merged := NewInputDefinition()
	for _, level := range levels {
		if level == nil {
			continue
		}
		for _, o := range level.options {
			if err := merged.mergeOption(o); err != nil {
				return nil, err
			}
		}
		for _, a := range level.arguments {
			if err := merged.mergeArgument(a); err != nil {
				return nil, err
			}
		}
	}
	if err := checkArgumentOrder(merged.arguments); err != nil {
		return nil, err
	}
	return merged, nil
}

func (d *InputDefinition) mergeOption(o *Option) error {
	cp := *o
	cp.Defaults = slices.Clone(o.Defaults)
	idx := slices.IndexFunc(d.options, func(existing *Option) bool { return existing.Name == o.Name })
	for i, existing := range d.options {
		if i != idx && existing.ShortName == o.Name {
			return &ConflictingNameError{
				Kind:   "option",
				Name:   o.Name,
				Reason: "already used as the short name of option " + existing.Name,
			}
		}
	}
	if o.ShortName != "" {
		for i, existing := range d.options {
			if i != idx && (existing.ShortName == o.ShortName || existing.Name == o.ShortName) {
				return &ConflictingNameError{
					Kind:   "short option",
					Name:   "-" + o.ShortName,
					Reason: "already used by option " + existing.Name,
				}
			}
		}
	}
	if idx < 0 {
		d.options = append(d.options, &cp)
		return nil
	}
	if existing := d.options[idx]; existing.Mode != o.Mode {
		return &ConflictingNameError{
			Kind:   "option",
			Name:   o.Name,
			Reason: "value mode " + o.Mode.String() + " does not match inherited mode " + existing.Mode.String(),
		}
	}
	d.options[idx] = &cp
	return nil
}

func (d *InputDefinition) mergeArgument(a *Argument) error {
	cp := *a
	cp.Defaults = slices.Clone(a.Defaults)
	idx := slices.IndexFunc(d.arguments, func(existing *Argument) bool { return existing.Name == a.Name })
	if idx < 0 {
		d.arguments = append(d.arguments, &cp)
		return nil
	}
	if d.arguments[idx].IsMultiple() != a.IsMultiple() {
		return &ConflictingNameError{
			Kind:   "argument",
			Name:   a.Name,
			Reason: "multiplicity does not match the inherited argument",
		}
	}
	d.arguments[idx] = &cp
	return nil
}

func validateArgument(a Argument) error {
	if err := validateName("argument", a.Name); err != nil {
		return err
	}
	if a.IsRequired() && (a.Default != "" || len(a.Defaults) > 0) {
		return configErrorf("argument %q: required arguments cannot have a default", a.Name)
	}
	if !a.IsMultiple() && len(a.Defaults) > 0 {
		return configErrorf("argument %q: only multi-valued arguments accept Defaults", a.Name)
	}
	if a.IsMultiple() && a.Default != "" {
		return configErrorf("argument %q: multi-valued arguments take Defaults, not Default", a.Name)
	}
	return nil
}

func validateOption(o Option) error {
	if err := validateName("option", o.Name); err != nil {
		return err
	}
	if strings.HasPrefix(o.Name, "-") {
		return configErrorf("option %q: name must not start with a dash", o.Name)
	}
	if o.ShortName != "" {
		if utf8.RuneCountInString(o.ShortName) != 1 || o.ShortName == "-" {
			return configErrorf("option %q: short name %q must be a single character", o.Name, o.ShortName)
		}
		if o.ShortName == o.Name {
			return configErrorf("option %q: short name repeats the name", o.Name)
		}
	}
	if o.Mode < ValueNone || o.Mode > ValueMultiple {
		return configErrorf("option %q: unknown value mode %d", o.Name, o.Mode)
	}
	if o.Mode == ValueNone && (o.Default != "" || len(o.Defaults) > 0) {
		return configErrorf("option %q: switches cannot have a default", o.Name)
	}
	if o.Mode != ValueMultiple && len(o.Defaults) > 0 {
		return configErrorf("option %q: only multi-valued options accept Defaults", o.Name)
	}
	if o.Mode == ValueMultiple && o.Default != "" {
		return configErrorf("option %q: multi-valued options take Defaults, not Default", o.Name)
	}
	if o.IsRequired() && o.Mode == ValueNone {
		return configErrorf("option %q: switches cannot be required", o.Name)
	}
	return nil
}

func validateName(kind, name string) error {
	if name == "" {
		return configErrorf("%s has no name", kind)
	}
	if strings.ContainsAny(name, " \t\n=") {
		return configErrorf("%s name %q must be a single word without '='", kind, name)
	}
	return nil
}

func checkArgumentOrder(args []*Argument) error {
	for i := 1; i < len(args); i++ {
		prev, cur := args[i-1], args[i]
		if prev.IsMultiple() {
			return configErrorf("argument %q cannot follow multi-valued argument %q", cur.Name, prev.Name)
		}
		if cur.IsRequired() && !prev.IsRequired() {
			return configErrorf("required argument %q cannot follow optional argument %q", cur.Name, prev.Name)
		}
	}
	return nil
}
