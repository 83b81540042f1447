// Package lineedit supplies the line sources a shell session reads from:
// an interactive readline editor for terminals and a plain scanner for
// pipes and scripts.
package lineedit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// DefaultHistoryLimit is the number of lines kept in a history file.
const DefaultHistoryLimit = 25

// ErrInterrupted is returned when the user presses Ctrl-C at the prompt.
var ErrInterrupted = errors.New("interrupted")

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Config configures a Readline editor.
type Config struct {
	Prompt       string
	HistoryFile  string // empty disables persisted history
	HistoryLimit int    // <= 0 uses DefaultHistoryLimit
	Complete     CompleteFunc
}

// Readline is an interactive line editor with history and tab completion.
type Readline struct {
	inst *readline.Instance
}

// NewReadline opens an editor on the process terminal.
func NewReadline(cfg Config) (*Readline, error) {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rc := &readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		HistoryLimit:      limit,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
	}
	if cfg.Complete != nil {
		rc.AutoComplete = &Completer{Complete: cfg.Complete}
	}

	inst, err := readline.NewEx(rc)
	if err != nil {
		return nil, fmt.Errorf("initializing line editor: %w", err)
	}
	return &Readline{inst: inst}, nil
}

// ReadLine blocks until the user submits a line. Ctrl-D on an empty line
// yields io.EOF; Ctrl-C yields ErrInterrupted.
func (r *Readline) ReadLine() (string, error) {
	line, err := r.inst.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	return line, nil
}

// SetPrompt replaces the prompt shown on the next read.
func (r *Readline) SetPrompt(prompt string) {
	r.inst.SetPrompt(prompt)
}

// Close restores the terminal.
func (r *Readline) Close() error {
	return r.inst.Close()
}

// Scanner reads newline-terminated lines from a non-interactive source.
type Scanner struct {
	sc *bufio.Scanner
}

// NewScanner reads lines from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (s *Scanner) ReadLine() (string, error) {
	if s.sc.Scan() {
		return strings.TrimSuffix(s.sc.Text(), "\r"), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
