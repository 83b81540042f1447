package repl

// Parameter describes one positional argument slot of a command.
//
// Parameters are values: every Set method returns a modified copy, so a
// failed configuration step never leaves a half-built Parameter behind.
type Parameter struct {
	name       string
	required   bool
	defaultVal string
	hasDefault bool
}

// NewParameter creates an optional parameter with no default.
func NewParameter(name string) Parameter {
	return Parameter{name: name}
}

// SetRequired marks the parameter as required (or optional).
// A defaulted parameter cannot be made required.
func (p Parameter) SetRequired(required bool) (Parameter, error) {
	if required && p.hasDefault {
		return Parameter{}, &IllegalDefaultError{Parameter: p.name}
	}
	p.required = required
	return p, nil
}

// SetDefault gives the parameter a value used when the argument is omitted.
// A required parameter cannot have a default.
func (p Parameter) SetDefault(value string) (Parameter, error) {
	if p.required {
		return Parameter{}, &IllegalDefaultError{Parameter: p.name}
	}
	p.defaultVal = value
	p.hasDefault = true
	return p, nil
}

// Name returns the parameter name.
func (p Parameter) Name() string { return p.name }

// Required reports whether the argument must be supplied.
func (p Parameter) Required() bool { return p.required }

// Default returns the default value and whether one is set.
func (p Parameter) Default() (string, bool) { return p.defaultVal, p.hasDefault }

// Usage renders the parameter for usage lines: <name>, [name] or [name=default].
func (p Parameter) Usage() string {
	switch {
	case p.required:
		return "<" + p.name + ">"
	case p.hasDefault:
		return "[" + p.name + "=" + p.defaultVal + "]"
	default:
		return "[" + p.name + "]"
	}
}

func (p Parameter) optional() bool { return !p.required }
