package repl

// Validate binds positional args to params for the named command.
//
// Arguments bind by position. An omitted required parameter fails with the
// first such parameter; an omitted defaulted parameter binds its default; an
// omitted optional parameter is left out of the result.
func Validate(command string, params []Parameter, args []string) (Args, error) {
	if len(args) > len(params) {
		return nil, &TooManyArgumentsError{Command: command, Max: len(params)}
	}

	bound := make(Args, len(params))
	for i, p := range params {
		switch {
		case i < len(args):
			bound[p.name] = NewValue(args[i])
		case p.required:
			return nil, &MissingRequiredArgumentError{Command: command, Parameter: p.name}
		case p.hasDefault:
			bound[p.name] = NewValue(p.defaultVal)
		}
	}
	return bound, nil
}
