package repl

import "strings"

// Handler is the capability a command invokes. It receives the bound
// arguments and an exclusive reference to the session context for the
// duration of the call. A non-empty result is printed; an empty one is a
// silent success.
type Handler[C any] interface {
	Handle(args Args, ctx *C) (string, error)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc[C any] func(args Args, ctx *C) (string, error)

// Handle calls f(args, ctx).
func (f HandlerFunc[C]) Handle(args Args, ctx *C) (string, error) {
	return f(args, ctx)
}

// Command is a named operation with an ordered parameter list and a handler.
type Command[C any] struct {
	name    string
	params  []Parameter
	help    string
	handler Handler[C]
}

// NewCommand creates a command backed by fn.
func NewCommand[C any](name string, fn func(args Args, ctx *C) (string, error)) Command[C] {
	var h Handler[C]
	if fn != nil {
		h = HandlerFunc[C](fn)
	}
	return Command[C]{name: name, handler: h}
}

// NewCommandHandler creates a command backed by an arbitrary Handler.
func NewCommandHandler[C any](name string, h Handler[C]) Command[C] {
	return Command[C]{name: name, handler: h}
}

// WithParameter appends p to the parameter list. Required parameters must
// precede every optional or defaulted one, and names must be unique.
func (c Command[C]) WithParameter(p Parameter) (Command[C], error) {
	if p.name == "" {
		return Command[C]{}, ErrEmptyName
	}
	for _, existing := range c.params {
		if existing.name == p.name {
			return Command[C]{}, &DuplicateParameterError{Command: c.name, Parameter: p.name}
		}
		if p.required && existing.optional() {
			return Command[C]{}, &IllegalRequiredError{Parameter: p.name}
		}
	}

	params := make([]Parameter, len(c.params), len(c.params)+1)
	copy(params, c.params)
	c.params = append(params, p)
	return c, nil
}

// WithHelp sets the one-line help summary.
func (c Command[C]) WithHelp(summary string) Command[C] {
	c.help = summary
	return c
}

// Name returns the command name.
func (c Command[C]) Name() string { return c.name }

// Help returns the one-line help summary.
func (c Command[C]) Help() string { return c.help }

// Parameters returns a copy of the declared parameters, in order.
func (c Command[C]) Parameters() []Parameter {
	out := make([]Parameter, len(c.params))
	copy(out, c.params)
	return out
}

// Usage renders "name <req> [opt] [def=value]".
func (c Command[C]) Usage() string {
	parts := make([]string, 0, len(c.params)+1)
	parts = append(parts, c.name)
	for _, p := range c.params {
		parts = append(parts, p.Usage())
	}
	return strings.Join(parts, " ")
}
