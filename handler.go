package console

import (
	"context"
)

// Handler services a resolved command invocation. It returns the process exit status; an error
// is returned to the caller of [Application.Run] wrapped in a [HandlerExecutionError].
type Handler interface {
	Handle(ctx context.Context, s *State) (int, error)
}

// HandlerFunc adapts a function to the [Handler] interface.
type HandlerFunc func(ctx context.Context, s *State) (int, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, s *State) (int, error) {
	return f(ctx, s)
}

// Callback is the simplest way to implement a command: a function receiving the command state.
type Callback func(ctx context.Context, s *State) (int, error)

// Runnable is an object exposing a single operation, usable as a command handler.
type Runnable interface {
	Run(ctx context.Context, s *State) (int, error)
}

// HandlerFactory builds a handler for the command being invoked.
type HandlerFactory func(cmd *Command) Handler

type handlerKind int

const (
	handlerNone handlerKind = iota
	handlerCallback
	handlerRunnable
	handlerExplicit
	handlerFactory
)

// HandlerSource is the handler declared on a command configuration. It is one of a callback, a
// runnable, an explicit handler or a handler factory; build one with [CallbackSource],
// [RunnableSource], [HandlerOf] or [FactorySource]. The zero value declares nothing, leaving the
// decision to the parent command.
type HandlerSource struct {
	kind     handlerKind
	callback Callback
	runnable Runnable
	handler  Handler
	factory  HandlerFactory
}

// CallbackSource declares fn as the command callback.
func CallbackSource(fn Callback) HandlerSource {
	if fn == nil {
		return HandlerSource{}
	}
	return HandlerSource{kind: handlerCallback, callback: fn}
}

// RunnableSource declares r as the command handler.
func RunnableSource(r Runnable) HandlerSource {
	if r == nil {
		return HandlerSource{}
	}
	return HandlerSource{kind: handlerRunnable, runnable: r}
}

// HandlerOf declares h as the command handler.
func HandlerOf(h Handler) HandlerSource {
	if h == nil {
		return HandlerSource{}
	}
	return HandlerSource{kind: handlerExplicit, handler: h}
}

// FactorySource declares a factory that builds the handler from the invoked command.
func FactorySource(fn HandlerFactory) HandlerSource {
	if fn == nil {
		return HandlerSource{}
	}
	return HandlerSource{kind: handlerFactory, factory: fn}
}

// IsZero reports whether the source declares nothing.
func (s HandlerSource) IsZero() bool {
	return s.kind == handlerNone
}

// CallbackHandler runs a [Callback] on behalf of the command it was resolved for.
type CallbackHandler struct {
	command  *Command
	callback Callback
}

// Command returns the command the handler was resolved for.
func (h *CallbackHandler) Command() *Command { return h.command }

// Handle runs the callback.
func (h *CallbackHandler) Handle(ctx context.Context, s *State) (int, error) {
	return h.callback(ctx, s)
}

// RunnableHandler runs a [Runnable] on behalf of the command it was resolved for.
type RunnableHandler struct {
	command  *Command
	runnable Runnable
}

// Command returns the command the handler was resolved for.
func (h *RunnableHandler) Command() *Command { return h.command }

// Runnable returns the wrapped runnable.
func (h *RunnableHandler) Runnable() Runnable { return h.runnable }

// Handle runs the runnable.
func (h *RunnableHandler) Handle(ctx context.Context, s *State) (int, error) {
	return h.runnable.Run(ctx, s)
}

// defaultHandler is used when no command in the chain declares a handler.
type defaultHandler struct {
	command *Command
}

// Command returns the command the handler was resolved for.
func (h *defaultHandler) Command() *Command { return h.command }

func (h *defaultHandler) Handle(context.Context, *State) (int, error) {
	return ExitSuccess, nil
}

// IsDefaultHandler reports whether h is the no-op handler used when neither a command nor any of
// its ancestors declares a handler.
func IsDefaultHandler(h Handler) bool {
	_, ok := h.(*defaultHandler)
	return ok
}

func (s HandlerSource) bind(cmd *Command) Handler {
	switch s.kind {
	case handlerNone:
		return nil
	case handlerCallback:
		return &CallbackHandler{command: cmd, callback: s.callback}
	case handlerRunnable:
		return &RunnableHandler{command: cmd, runnable: s.runnable}
	case handlerExplicit:
		return s.handler
	case handlerFactory:
		if h := s.factory(cmd); h != nil {
			return h
		}
		return &defaultHandler{command: cmd}
	default:
		panic("console: unknown handler source")
	}
}
