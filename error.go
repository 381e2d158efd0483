package console

import (
	"errors"
	"fmt"
	"strings"
)

// Exit statuses returned by [Application.Run] when the framework, rather than a handler, decides
// the outcome.
const (
	ExitSuccess = 0
	// ExitFailure is returned for unknown commands and failed handlers.
	ExitFailure = 1
	// ExitUsage is returned when the command line does not match the command's input definition.
	ExitUsage = 2
)

var (
	// ErrConfiguration matches every error raised while declaring or building a configuration.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrNotFound matches lookup misses, including unknown commands typed by the user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument matches command lines that do not satisfy an input definition.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConfigurationError is returned when a declaration is invalid, for example a required argument
// that follows an optional one.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateNameError is returned when a name is declared twice at the same level.
type DuplicateNameError struct {
	// Kind is what was declared: "argument", "option", "short option" or "command".
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	if e.Kind == "short option" {
		return fmt.Sprintf("duplicate %s %q", e.Kind, "-"+e.Name)
	}
	return fmt.Sprintf("duplicate %s %q", e.Kind, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConflictingNameError is returned when merging definitions finds a more specific declaration
// that cannot replace the inherited one, for example an option redeclared with a different value
// mode.
type ConflictingNameError struct {
	Kind   string
	Name   string
	Reason string
}

func (e *ConflictingNameError) Error() string {
	return fmt.Sprintf("conflicting %s %q: %s", e.Kind, e.Name, e.Reason)
}

func (e *ConflictingNameError) Is(target error) bool {
	return target == ErrConfiguration
}

// NotFoundError is returned when a named configuration or command does not exist.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CommandNotFoundError is returned when the command line names a command that does not exist.
type CommandNotFoundError struct {
	// Path holds the names of the commands that were resolved before the unknown one.
	Path []string
	Name string
	// Suggestions holds known command names similar to Name.
	Suggestions []string
}

func (e *CommandNotFoundError) Error() string {
	var b strings.Builder
	if len(e.Path) == 0 {
		fmt.Fprintf(&b, "unknown command %q", e.Name)
	} else {
		fmt.Fprintf(&b, "unknown command %q for %q", e.Name, strings.Join(e.Path, " "))
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(". Did you mean one of these?\n\t")
		b.WriteString(strings.Join(e.Suggestions, "\n\t"))
	}
	return b.String()
}

func (e *CommandNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidArgumentError is returned when the command line does not match the effective input
// definition of the resolved command.
type InvalidArgumentError struct {
	// Command is the full path of the resolved command.
	Command string
	Err     error

	command *Command
}

func (e *InvalidArgumentError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("command %q: %v", e.Command, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// HandlerExecutionError wraps an error returned by a command handler. The framework never
// interprets these errors, it only attaches the command path.
type HandlerExecutionError struct {
	Command string
	Err     error
}

func (e *HandlerExecutionError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Command, e.Err)
}

func (e *HandlerExecutionError) Unwrap() error {
	return e.Err
}
