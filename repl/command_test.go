package repl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noop(Args, *struct{}) (string, error) { return "", nil }

func mustParam(t *testing.T, name string, required bool, def ...string) Parameter {
	t.Helper()
	p := NewParameter(name)
	var err error
	if required {
		if p, err = p.SetRequired(true); err != nil {
			t.Fatalf("SetRequired(%s): %v", name, err)
		}
	}
	if len(def) > 0 {
		if p, err = p.SetDefault(def[0]); err != nil {
			t.Fatalf("SetDefault(%s): %v", name, err)
		}
	}
	return p
}

func TestNoRequiredAfterOptional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		first Parameter
	}{
		{"after defaulted", mustParam(t, "baz", false, "20")},
		{"after optional", mustParam(t, "baz", false)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd, err := NewCommand("foo", noop).WithParameter(tt.first)
			if err != nil {
				t.Fatalf("WithParameter(first): %v", err)
			}
			_, err = cmd.WithParameter(mustParam(t, "bar", true))

			var ire *IllegalRequiredError
			if !errors.As(err, &ire) {
				t.Fatalf("expected IllegalRequiredError, got %v", err)
			}
			if ire.Parameter != "bar" {
				t.Errorf("Parameter = %q, want the later parameter bar", ire.Parameter)
			}
		})
	}
}

func TestOptionalAfterRequiredIsAllowed(t *testing.T) {
	t.Parallel()

	cmd := NewCommand("hello", noop)
	var err error
	for _, p := range []Parameter{
		mustParam(t, "who", true),
		mustParam(t, "greeting", false, "Hello"),
		mustParam(t, "suffix", false),
	} {
		if cmd, err = cmd.WithParameter(p); err != nil {
			t.Fatalf("WithParameter(%s): %v", p.Name(), err)
		}
	}

	var names []string
	for _, p := range cmd.Parameters() {
		names = append(names, p.Name())
	}
	if diff := cmp.Diff([]string{"who", "greeting", "suffix"}, names); diff != "" {
		t.Errorf("parameter order mismatch (-want +got):\n%s", diff)
	}
	if got, want := cmd.Usage(), "hello <who> [greeting=Hello] [suffix]"; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
}

func TestWithParameterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	t.Parallel()

	cmd, err := NewCommand("set", noop).WithParameter(mustParam(t, "key", true))
	if err != nil {
		t.Fatalf("WithParameter: %v", err)
	}

	_, err = cmd.WithParameter(mustParam(t, "key", true))
	var dup *DuplicateParameterError
	if !errors.As(err, &dup) || dup.Parameter != "key" || dup.Command != "set" {
		t.Errorf("expected DuplicateParameterError(set, key), got %v", err)
	}

	if _, err := cmd.WithParameter(NewParameter("")); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestWithParameterDoesNotAlias(t *testing.T) {
	t.Parallel()

	base, err := NewCommand("x", noop).WithParameter(mustParam(t, "a", true))
	if err != nil {
		t.Fatalf("WithParameter: %v", err)
	}
	left, _ := base.WithParameter(mustParam(t, "b", false))
	right, _ := base.WithParameter(mustParam(t, "c", false))

	if got := left.Parameters()[1].Name(); got != "b" {
		t.Errorf("left second parameter = %q, want b", got)
	}
	if got := right.Parameters()[1].Name(); got != "c" {
		t.Errorf("right second parameter = %q, want c", got)
	}
	if len(base.Parameters()) != 1 {
		t.Errorf("base gained parameters: %d", len(base.Parameters()))
	}
}

func TestRegistryReplacesAndSorts(t *testing.T) {
	t.Parallel()

	r := NewRegistry[struct{}]()
	for _, name := range []string{"zeta", "Alpha", "mid", "alpha"} {
		if err := r.Register(NewCommand(name, noop)); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	if err := r.Register(NewCommand("mid", noop).WithHelp("second")); err != nil {
		t.Fatalf("Register(mid again): %v", err)
	}

	if diff := cmp.Diff([]string{"Alpha", "alpha", "mid", "zeta"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	cmd, ok := r.Lookup("mid")
	if !ok || cmd.Help() != "second" {
		t.Errorf("Lookup(mid) = %+v, %v; want the replacement", cmd.Help(), ok)
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
}

func TestRegistryRejectsInvalidCommands(t *testing.T) {
	t.Parallel()

	r := NewRegistry[struct{}]()
	if err := r.Register(NewCommand("", noop)); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := r.Register(NewCommand[struct{}]("nil", nil)); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil handler: got %v", err)
	}
}

type counterHandler struct{ calls int }

func (h *counterHandler) Handle(_ Args, ctx *int) (string, error) {
	h.calls++
	*ctx += 10
	return "", nil
}

func TestNewCommandHandler(t *testing.T) {
	t.Parallel()

	h := &counterHandler{}
	cmd := NewCommandHandler[int]("bump", h)
	ctx := 1
	if _, err := cmd.handler.Handle(Args{}, &ctx); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if h.calls != 1 || ctx != 11 {
		t.Errorf("calls=%d ctx=%d, want 1 and 11", h.calls, ctx)
	}
}
