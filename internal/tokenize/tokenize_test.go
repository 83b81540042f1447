package tokenize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t  ", nil},
		{"single word", "help", []string{"help"}},
		{"collapses whitespace", "  add   1\t2  ", []string{"add", "1", "2"}},
		{"quoted middle", `foo "baz test 123" bar`, []string{"foo", "baz test 123", "bar"}},
		{"quoted last", `foo foo "baz test 123"`, []string{"foo", "foo", "baz test 123"}},
		{"quoted first", `"two words" x`, []string{"two words", "x"}},
		{"quote inside word stripped", `say"hi"`, []string{"sayhi"}},
		{"empty quotes become empty token", `set key ""`, []string{"set", "key", ""}},
		{"adjacent quoted spans", `"a b""c d"`, []string{"a b", "c d"}},
		{"unicode", `hello "wörld ✓"`, []string{"hello", "wörld ✓"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		column int
	}{
		{`foo "bar baz`, 5},
		{`"`, 1},
		{`echo "a" b"`, 11},
		{`ü "x`, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			toks, err := Tokenize(tt.line)
			if toks != nil {
				t.Errorf("expected no tokens, got %q", toks)
			}
			var qerr *UnterminatedQuoteError
			if !errors.As(err, &qerr) {
				t.Fatalf("expected UnterminatedQuoteError, got %v", err)
			}
			if qerr.Column != tt.column {
				t.Errorf("Column = %d, want %d", qerr.Column, tt.column)
			}
		})
	}
}
