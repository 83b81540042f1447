package lineedit

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScannerReadsLinesThenEOF(t *testing.T) {
	t.Parallel()

	s := NewScanner(strings.NewReader("add 1 2\r\n\nhello \"big world\"\n"))

	var got []string
	for {
		line, err := s.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"add 1 2", "", `hello "big world"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := NewScanner(strings.NewReader("")).ReadLine()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestIsInteractiveNilAndFile(t *testing.T) {
	t.Parallel()

	if IsInteractive(nil) {
		t.Error("nil file should not be interactive")
	}

	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if IsInteractive(f) {
		t.Error("regular file should not be interactive")
	}
}

func TestCompleterDo(t *testing.T) {
	t.Parallel()

	commands := []string{"add", "hello", "help", "history"}
	c := &Completer{Complete: func(prior []string, word string) []string {
		if len(prior) == 0 {
			return commands
		}
		if prior[0] == "help" && len(prior) == 1 {
			return commands
		}
		return nil
	}}

	tests := []struct {
		name       string
		line       string
		wantSuffix []string
		wantLen    int
	}{
		{"empty line lists all", "", []string{"add ", "hello ", "help ", "history "}, 0},
		{"prefix filters", "he", []string{"llo ", "lp "}, 2},
		{"exact word", "add", []string{" "}, 3},
		{"no match", "zz", nil, 2},
		{"second word after help", "help h", []string{"ello ", "elp ", "istory "}, 1},
		{"after trailing space", "help ", []string{"add ", "hello ", "help ", "history "}, 0},
		{"arguments of other commands", "add 1", nil, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := []rune(tt.line)
			got, n := c.Do(line, len(line))

			var suffixes []string
			for _, r := range got {
				suffixes = append(suffixes, string(r))
			}
			if diff := cmp.Diff(tt.wantSuffix, suffixes); diff != "" {
				t.Errorf("suffixes mismatch (-want +got):\n%s", diff)
			}
			if n != tt.wantLen {
				t.Errorf("length = %d, want %d", n, tt.wantLen)
			}
		})
	}
}

func TestCompleterNilFunc(t *testing.T) {
	t.Parallel()

	got, n := (&Completer{}).Do([]rune("x"), 1)
	if got != nil || n != 0 {
		t.Errorf("expected no completions, got %v, %d", got, n)
	}
}
