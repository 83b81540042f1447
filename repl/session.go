// Package repl is a command registration, validation and dispatch engine
// for interactive shells.
//
// A host builds a Session around its own context value, registers commands
// with ordered positional parameters, and calls Run. Each input line is
// tokenized, matched against the registry, validated and handed to the
// command's handler together with an exclusive pointer to the context.
package repl

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Dicklesworthstone/replkit/internal/lineedit"
	"github.com/Dicklesworthstone/replkit/internal/theme"
)

// HelpCommandName is the built-in command that shows help. A registered
// command with the same name shadows it.
const HelpCommandName = "help"

// State is the dispatcher's position in the read/dispatch cycle.
type State int

const (
	Idle State = iota
	Tokenizing
	Resolving
	Validating
	Invoking
	Quit
	Fatal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Tokenizing:
		return "tokenizing"
	case Resolving:
		return "resolving"
	case Validating:
		return "validating"
	case Invoking:
		return "invoking"
	case Quit:
		return "quit"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LineReader supplies one line of input per prompt cycle. It returns io.EOF
// or ErrInterrupted when the user ends the session.
type LineReader interface {
	ReadLine() (string, error)
}

// ErrorHandler receives every runtime error of a dispatch cycle. Returning
// nil continues the loop; returning an error stops Run with that error.
type ErrorHandler[C any] func(err error, s *Session[C]) error

// DefaultErrorHandler prints err to the session's error output and continues.
func DefaultErrorHandler[C any](err error, s *Session[C]) error {
	fmt.Fprintln(s.errOut, s.theme.Error.Render(err.Error()))
	return nil
}

// AbortOnError stops the session on the first runtime error.
func AbortOnError[C any](err error, _ *Session[C]) error {
	return err
}

type settings struct {
	name         string
	version      string
	description  string
	banner       string
	prompt       string
	historyFile  string
	historyLimit int
	in           io.Reader
	out          io.Writer
	errOut       io.Writer
	reader       LineReader
	helpViewer   HelpViewer
	logger       *slog.Logger
}

// Option configures a Session.
type Option func(*settings)

// WithName names the application; it appears in help and the default prompt.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithVersion sets the version shown in help.
func WithVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// WithDescription sets the description shown in help.
func WithDescription(description string) Option {
	return func(s *settings) { s.description = description }
}

// WithBanner sets text printed once when Run starts.
func WithBanner(banner string) Option {
	return func(s *settings) { s.banner = banner }
}

// WithPrompt replaces the default "name> " prompt.
func WithPrompt(prompt string) Option {
	return func(s *settings) { s.prompt = prompt }
}

// WithHistory persists accepted lines to path.
func WithHistory(path string) Option {
	return func(s *settings) { s.historyFile = path }
}

// WithHistoryLimit caps the number of persisted history lines.
func WithHistoryLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithInput reads lines from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(s *settings) { s.in = r }
}

// WithOutput directs handler results and help to w.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithErrorOutput directs error messages and notices to w.
func WithErrorOutput(w io.Writer) Option {
	return func(s *settings) { s.errOut = w }
}

// WithLineReader supplies a custom line source.
func WithLineReader(r LineReader) Option {
	return func(s *settings) { s.reader = r }
}

// WithHelpViewer replaces the default help renderer.
func WithHelpViewer(v HelpViewer) Option {
	return func(s *settings) { s.helpViewer = v }
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session owns the registry, the shared context and the dispatch loop.
// It is not safe for concurrent use.
type Session[C any] struct {
	settings
	context      C
	registry     *Registry[C]
	errorHandler ErrorHandler[C]
	help         *HelpContext
	state        State
	running      bool
	theme        theme.Theme
}

// New creates a session owning ctx.
func New[C any](ctx C, opts ...Option) *Session[C] {
	s := &Session[C]{
		settings: settings{
			historyLimit: lineedit.DefaultHistoryLimit,
			in:           os.Stdin,
			out:          os.Stdout,
			errOut:       os.Stderr,
			logger:       slog.Default(),
		},
		context:  ctx,
		registry: NewRegistry[C](),
		theme:    theme.Current(),
	}
	s.errorHandler = DefaultErrorHandler[C]
	for _, opt := range opts {
		opt(&s.settings)
	}
	if s.helpViewer == nil {
		s.helpViewer = NewDefaultHelpViewer(s.out, helpWidth(s.out))
	}
	return s
}

func helpWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return theme.Width(f)
	}
	return theme.DefaultWidth
}

// AddCommand registers cmd, replacing a command of the same name.
func (s *Session[C]) AddCommand(cmd Command[C]) error {
	if s.running {
		return ErrRegistryClosed
	}
	if err := s.registry.Register(cmd); err != nil {
		return fmt.Errorf("registering command %q: %w", cmd.name, err)
	}
	s.help = nil
	s.logger.Debug("registered command", "command", cmd.name, "parameters", len(cmd.params))
	return nil
}

// SetErrorHandler installs h. A nil handler makes every runtime error fatal.
func (s *Session[C]) SetErrorHandler(h ErrorHandler[C]) {
	s.errorHandler = h
}

// Name returns the application name.
func (s *Session[C]) Name() string { return s.name }

// Version returns the application version.
func (s *Session[C]) Version() string { return s.version }

// Description returns the application description.
func (s *Session[C]) Description() string { return s.description }

// Commands returns the registered command names in lexical order.
func (s *Session[C]) Commands() []string { return s.registry.Names() }

// Context returns a copy of the session context.
func (s *Session[C]) Context() C { return s.context }

// State returns the dispatcher state.
func (s *Session[C]) State() State { return s.state }

// ErrorOutput returns the writer used for errors and notices.
func (s *Session[C]) ErrorOutput() io.Writer { return s.errOut }

// HelpContext returns the help snapshot, building it if needed.
func (s *Session[C]) HelpContext() *HelpContext {
	if s.help == nil {
		s.help = BuildHelpContext(s.name, s.version, s.description, s.registry)
	}
	return s.help
}

// Prompt returns the prompt shown before each line.
func (s *Session[C]) Prompt() string {
	if s.prompt != "" {
		return s.prompt
	}
	return s.theme.Prompt.Render(s.name + "> ")
}
