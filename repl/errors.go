package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/replkit/internal/lineedit"
	"github.com/Dicklesworthstone/replkit/internal/tokenize"
)

var (
	// ErrEmptyName is returned when a command or parameter is declared without a name.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNilHandler is returned when a command is registered without a handler.
	ErrNilHandler = errors.New("command handler must not be nil")

	// ErrRegistryClosed is returned by AddCommand once the session loop has started.
	ErrRegistryClosed = errors.New("commands cannot be added while the session is running")

	// ErrArgumentNotBound is returned by Arg when the argument was not supplied
	// and has no default.
	ErrArgumentNotBound = errors.New("argument not bound")

	// ErrUnsupportedType is wrapped by ConversionError when Convert has no rule
	// for the requested type.
	ErrUnsupportedType = errors.New("unsupported conversion target")

	// ErrInterrupted is returned by a LineReader when the user interrupts the
	// prompt (Ctrl-C). The session treats it like end of input.
	ErrInterrupted = lineedit.ErrInterrupted
)

// UnterminatedQuoteError reports an input line whose double quote never closes.
type UnterminatedQuoteError = tokenize.UnterminatedQuoteError

// IllegalDefaultError reports a parameter configured as both required and defaulted.
type IllegalDefaultError struct {
	Parameter string
}

func (e *IllegalDefaultError) Error() string {
	return fmt.Sprintf("parameter %q: a required parameter cannot have a default value", e.Parameter)
}

// IllegalRequiredError reports a required parameter declared after an optional one.
type IllegalRequiredError struct {
	Parameter string
}

func (e *IllegalRequiredError) Error() string {
	return fmt.Sprintf("parameter %q: required parameters must come before optional ones", e.Parameter)
}

// DuplicateParameterError reports a parameter name used twice within one command.
type DuplicateParameterError struct {
	Command   string
	Parameter string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("command %q: parameter %q declared more than once", e.Command, e.Parameter)
}

// TooManyArgumentsError reports more positional arguments than declared parameters.
type TooManyArgumentsError struct {
	Command string
	Max     int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("command %q: too many arguments (at most %d allowed)", e.Command, e.Max)
}

// MissingRequiredArgumentError reports the first unmet required parameter.
type MissingRequiredArgumentError struct {
	Command   string
	Parameter string
}

func (e *MissingRequiredArgumentError) Error() string {
	return fmt.Sprintf("command %q: missing required argument %q", e.Command, e.Parameter)
}

// UnknownCommandError reports a first token that matches no command.
type UnknownCommandError struct {
	Name        string
	Suggestions []string // closest registered names, best first
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(quoteAll(e.Suggestions), " or ") + "?)"
	}
	return msg
}

// ConversionError reports a bound value that could not be converted to the
// type a handler asked for.
type ConversionError struct {
	Value string
	Type  string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// HandlerError wraps a failure returned by a command's own handler.
type HandlerError struct {
	Command string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
