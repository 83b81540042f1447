package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Dicklesworthstone/replkit/internal/lineedit"
	"github.com/Dicklesworthstone/replkit/internal/tokenize"
)

// maxSuggestions bounds the names offered for an unknown command.
const maxSuggestions = 3

// Dispatch runs one cycle for line: tokenize, resolve, validate, invoke.
// Blank lines are a no-op. The returned error has not been passed to the
// error handler; Run does that.
func (s *Session[C]) Dispatch(line string) error {
	defer func() { s.state = Idle }()

	s.state = Tokenizing
	tokens, err := tokenize.Tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	name, args := tokens[0], tokens[1:]

	s.state = Resolving
	cmd, ok := s.registry.Lookup(name)
	if !ok {
		if name == HelpCommandName {
			return s.showHelp(args)
		}
		return &UnknownCommandError{Name: name, Suggestions: s.suggest(name)}
	}

	s.state = Validating
	bound, err := Validate(cmd.name, cmd.params, args)
	if err != nil {
		s.logger.Debug("argument validation failed", "command", name, "error", err)
		return err
	}

	s.state = Invoking
	s.logger.Debug("dispatch", "command", name, "args", len(bound))
	result, err := cmd.handler.Handle(bound, &s.context)
	if err != nil {
		s.logger.Warn("command failed", "command", name, "error", err)
		return &HandlerError{Command: name, Err: err}
	}
	if result != "" {
		fmt.Fprintln(s.out, result)
	}
	return nil
}

func (s *Session[C]) showHelp(args []string) error {
	help := s.HelpContext()
	switch len(args) {
	case 0:
		return s.helpViewer.HelpGeneral(help)
	case 1:
		entry, ok := help.Lookup(args[0])
		if !ok {
			fmt.Fprintln(s.errOut, s.theme.Notice.Render(fmt.Sprintf("Help not found for command '%s'", args[0])))
			return nil
		}
		return s.helpViewer.HelpCommand(entry)
	default:
		return &TooManyArgumentsError{Command: HelpCommandName, Max: 1}
	}
}

// suggest ranks registered names by fuzzy distance to name.
func (s *Session[C]) suggest(name string) []string {
	ranks := fuzzy.RankFindFold(name, s.registry.Names())
	if len(ranks) == 0 {
		// The typed name may be longer than the command (a typo with an
		// extra letter); try the reverse containment.
		for _, cand := range s.registry.Names() {
			if fuzzy.MatchFold(cand, name) {
				ranks = append(ranks, fuzzy.Rank{Source: name, Target: cand, Distance: fuzzy.LevenshteinDistance(name, cand)})
			}
		}
	}
	sort.Stable(ranks)

	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// Complete returns completion candidates for word given the complete words
// before it: command names for the first word, and command names again
// after "help".
func (s *Session[C]) Complete(prior []string, word string) []string {
	switch {
	case len(prior) == 0:
		names := s.registry.Names()
		if _, shadowed := s.registry.Lookup(HelpCommandName); !shadowed {
			names = append(names, HelpCommandName)
		}
		return names
	case len(prior) == 1 && prior[0] == HelpCommandName:
		if _, shadowed := s.registry.Lookup(HelpCommandName); shadowed {
			return nil
		}
		return s.registry.Names()
	default:
		return nil
	}
}

// Run prints the banner, snapshots help, closes the registry and loops until
// the line source ends (Quit) or an error escapes the error handler (Fatal).
// Cancelling ctx ends the loop before the next read.
func (s *Session[C]) Run(ctx context.Context) error {
	reader, closeReader, err := s.lineReader()
	if err != nil {
		s.state = Fatal
		return err
	}
	defer closeReader()

	s.running = true
	defer func() { s.running = false }()

	if s.banner != "" {
		fmt.Fprintln(s.out, s.banner)
	}
	s.HelpContext()
	s.logger.Debug("session started", "name", s.name, "commands", s.registry.Len())

	for {
		if ctx.Err() != nil {
			s.state = Quit
			return nil
		}

		line, err := reader.ReadLine()
		switch {
		case errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted):
			fmt.Fprintln(s.out, "\nquitting...")
			s.state = Quit
			return nil
		case err != nil:
			s.state = Fatal
			return fmt.Errorf("reading input: %w", err)
		}

		derr := s.Dispatch(line)
		if derr == nil {
			continue
		}
		if s.errorHandler == nil {
			s.state = Fatal
			return derr
		}
		if herr := s.errorHandler(derr, s); herr != nil {
			s.state = Fatal
			return herr
		}
	}
}

// lineReader picks the configured reader, an interactive editor when input
// is a terminal, or a plain scanner otherwise.
func (s *Session[C]) lineReader() (LineReader, func(), error) {
	noop := func() {}
	if s.reader != nil {
		return s.reader, noop, nil
	}

	if f, ok := s.in.(*os.File); ok && f == os.Stdin && lineedit.IsInteractive(f) {
		rl, err := lineedit.NewReadline(lineedit.Config{
			Prompt:       s.Prompt(),
			HistoryFile:  s.historyFile,
			HistoryLimit: s.historyLimit,
			Complete:     s.Complete,
		})
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { _ = rl.Close() }, nil
	}
	return lineedit.NewScanner(s.in), noop, nil
}
