package repl

import "sort"

// Registry maps command names to their definitions.
type Registry[C any] struct {
	commands map[string]Command[C]
}

// NewRegistry creates an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{commands: make(map[string]Command[C])}
}

// Register adds cmd, replacing any earlier command with the same name.
func (r *Registry[C]) Register(cmd Command[C]) error {
	if cmd.name == "" {
		return ErrEmptyName
	}
	if cmd.handler == nil {
		return ErrNilHandler
	}
	r.commands[cmd.name] = cmd
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry[C]) Lookup(name string) (Command[C], bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered command names in lexical order.
func (r *Registry[C]) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry[C]) Len() int { return len(r.commands) }
