package repl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	params := []Parameter{
		mustParam(t, "who", true),
		mustParam(t, "greeting", false, "Hello"),
		mustParam(t, "suffix", false),
	}

	tests := []struct {
		name string
		args []string
		want Args
	}{
		{
			name: "only required",
			args: []string{"world"},
			want: Args{"who": NewValue("world"), "greeting": NewValue("Hello")},
		},
		{
			name: "override default",
			args: []string{"world", "Hi"},
			want: Args{"who": NewValue("world"), "greeting": NewValue("Hi")},
		},
		{
			name: "all supplied",
			args: []string{"world", "Hi", "!"},
			want: Args{"who": NewValue("world"), "greeting": NewValue("Hi"), "suffix": NewValue("!")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Validate("hello", params, tt.args)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Value{})); diff != "" {
				t.Errorf("bound args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateOmittedOptionalHasNoEntry(t *testing.T) {
	t.Parallel()

	got, err := Validate("echo", []Parameter{mustParam(t, "text", false)}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := got["text"]; ok {
		t.Error("omitted optional parameter should not be bound")
	}
	if len(got) != 0 {
		t.Errorf("expected empty mapping, got %v", got)
	}
}

func TestValidateTooManyArguments(t *testing.T) {
	t.Parallel()

	params := []Parameter{mustParam(t, "bar", true), mustParam(t, "baz", true)}
	_, err := Validate("foo", params, []string{"a", "b", "c"})

	var tma *TooManyArgumentsError
	if !errors.As(err, &tma) {
		t.Fatalf("expected TooManyArgumentsError, got %v", err)
	}
	if tma.Command != "foo" || tma.Max != 2 {
		t.Errorf("got %+v, want foo/2", *tma)
	}
}

func TestValidateTooManyForNoParameters(t *testing.T) {
	t.Parallel()

	_, err := Validate("keys", nil, []string{"x"})
	var tma *TooManyArgumentsError
	if !errors.As(err, &tma) || tma.Max != 0 {
		t.Fatalf("expected TooManyArgumentsError with max 0, got %v", err)
	}
}

func TestValidateReportsFirstMissingRequired(t *testing.T) {
	t.Parallel()

	params := []Parameter{
		mustParam(t, "a", true),
		mustParam(t, "b", true),
		mustParam(t, "c", true),
	}
	_, err := Validate("foo", params, []string{"only"})

	var mra *MissingRequiredArgumentError
	if !errors.As(err, &mra) {
		t.Fatalf("expected MissingRequiredArgumentError, got %v", err)
	}
	if mra.Command != "foo" || mra.Parameter != "b" {
		t.Errorf("got %+v, want foo/b", *mra)
	}
}
