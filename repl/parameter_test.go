package repl

import (
	"errors"
	"testing"
)

func TestRequiredCannotBeDefaulted(t *testing.T) {
	t.Parallel()

	p, err := NewParameter("bar").SetRequired(true)
	if err != nil {
		t.Fatalf("SetRequired: %v", err)
	}
	_, err = p.SetDefault("foo")

	var ide *IllegalDefaultError
	if !errors.As(err, &ide) {
		t.Fatalf("expected IllegalDefaultError, got %v", err)
	}
	if ide.Parameter != "bar" {
		t.Errorf("Parameter = %q, want bar", ide.Parameter)
	}
}

func TestDefaultedCannotBeRequired(t *testing.T) {
	t.Parallel()

	p, err := NewParameter("bar").SetDefault("20")
	if err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	_, err = p.SetRequired(true)

	var ide *IllegalDefaultError
	if !errors.As(err, &ide) || ide.Parameter != "bar" {
		t.Fatalf("expected IllegalDefaultError(bar), got %v", err)
	}
}

func TestSetRequiredFalseKeepsDefault(t *testing.T) {
	t.Parallel()

	p, err := NewParameter("step").SetDefault("1")
	if err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	p, err = p.SetRequired(false)
	if err != nil {
		t.Fatalf("SetRequired(false): %v", err)
	}
	if def, ok := p.Default(); !ok || def != "1" {
		t.Errorf("Default() = %q, %v; want 1, true", def, ok)
	}
}

func TestParameterIsImmutable(t *testing.T) {
	t.Parallel()

	base := NewParameter("x")
	req, err := base.SetRequired(true)
	if err != nil {
		t.Fatalf("SetRequired: %v", err)
	}
	if base.Required() {
		t.Error("SetRequired mutated the receiver")
	}
	if !req.Required() {
		t.Error("returned parameter should be required")
	}
}

func TestParameterUsage(t *testing.T) {
	t.Parallel()

	req, _ := NewParameter("who").SetRequired(true)
	def, _ := NewParameter("greeting").SetDefault("Hello")
	opt := NewParameter("text")

	tests := []struct {
		p    Parameter
		want string
	}{
		{req, "<who>"},
		{def, "[greeting=Hello]"},
		{opt, "[text]"},
	}
	for _, tt := range tests {
		if got := tt.p.Usage(); got != tt.want {
			t.Errorf("Usage() = %q, want %q", got, tt.want)
		}
	}
}
