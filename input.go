package console

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Input holds the argument and option values bound from a command line.
type Input struct {
	definition *InputDefinition
	arguments  map[string][]string
	options    map[string][]string
	givenArgs  map[string]bool
	givenOpts  map[string]bool
	tokens     []string
}

func newInput(def *InputDefinition, tokens []string) *Input {
	return &Input{
		definition: def,
		arguments:  make(map[string][]string),
		options:    make(map[string][]string),
		givenArgs:  make(map[string]bool),
		givenOpts:  make(map[string]bool),
		tokens:     tokens,
	}
}

// Definition returns the definition the input was parsed against.
func (in *Input) Definition() *InputDefinition { return in.definition }

// Tokens returns the command line tokens that were parsed, without command names.
func (in *Input) Tokens() []string { return slices.Clone(in.tokens) }

// Argument returns the value of a single-valued argument, or its default when omitted. For a
// multi-valued argument it returns the first value.
//
// It panics if the argument is not declared: asking for an undeclared argument is a programming
// error.
func (in *Input) Argument(name string) string {
	values := in.Arguments(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Arguments returns every value of an argument. It panics if the argument is not declared.
func (in *Input) Arguments(name string) []string {
	if !in.definition.HasArgument(name) {
		panic(fmt.Errorf("internal error: argument %q not declared", name))
	}
	return slices.Clone(in.arguments[name])
}

// IsArgumentSet reports whether the argument was given on the command line.
func (in *Input) IsArgumentSet(name string) bool {
	return in.givenArgs[name]
}

// Option returns the value of an option: the last value given, or its default. Switches report
// "true" when present and "" when absent. It accepts long and short names and panics if the option
// is not declared.
func (in *Input) Option(name string) string {
	values := in.Options(name)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// Options returns every value given for an option, or its defaults. It panics if the option is
// not declared.
func (in *Input) Options(name string) []string {
	opt, ok := in.definition.Option(name)
	if !ok {
		panic(fmt.Errorf("internal error: option %q not declared", name))
	}
	return slices.Clone(in.options[opt.Name])
}

// IsOptionSet reports whether the option was given on the command line.
func (in *Input) IsOptionSet(name string) bool {
	opt, ok := in.definition.Option(name)
	if !ok {
		return false
	}
	return in.givenOpts[opt.Name]
}

// Value is the set of types [GetOption] and [GetArgument] convert to.
type Value interface {
	string | bool | int | int64 | float64 | time.Duration | []string
}

// GetOption returns an option value converted to T. Example usage:
//
//	verbose := console.GetOption[bool](s.Input, "verbose")
//	count := console.GetOption[int](s.Input, "count")
//	tags := console.GetOption[[]string](s.Input, "tag")
//
// It panics if the option is not declared or its value cannot be converted: both indicate a
// mismatch between the declaration and the code reading it.
func GetOption[T Value](in *Input, name string) T {
	v, err := convertValue[T](in.Options(name))
	if err != nil {
		panic(fmt.Errorf("internal error: option %q: %w", name, err))
	}
	return v
}

// GetArgument returns an argument value converted to T. It panics like [GetOption].
func GetArgument[T Value](in *Input, name string) T {
	v, err := convertValue[T](in.Arguments(name))
	if err != nil {
		panic(fmt.Errorf("internal error: argument %q: %w", name, err))
	}
	return v
}

func convertValue[T Value](values []string) (T, error) {
	var zero T
	last := ""
	if len(values) > 0 {
		last = values[len(values)-1]
	}
	var out any
	switch any(zero).(type) {
	case []string:
		out = values
	case time.Duration:
		if last == "" {
			return zero, nil
		}
		d, err := time.ParseDuration(last)
		if err != nil {
			return zero, err
		}
		out = d
	default:
		return convertScalar[T](last)
	}
	return out.(T), nil
}

func convertScalar[T Value](s string) (T, error) {
	var zero T
	switch p := any(&zero).(type) {
	case *string:
		*p = s
	case *bool:
		if s == "" {
			return zero, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return zero, err
		}
		*p = b
	case *int:
		if s == "" {
			return zero, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return zero, err
		}
		*p = n
	case *int64:
		if s == "" {
			return zero, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, err
		}
		*p = n
	case *float64:
		if s == "" {
			return zero, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, err
		}
		*p = f
	default:
		return zero, fmt.Errorf("unsupported type %T", zero)
	}
	return zero, nil
}
