// Package tokenize splits a shell input line into positional tokens.
//
// A token is either a double-quoted span with no embedded quote or newline,
// or a maximal run of non-whitespace characters. Quote characters are
// stripped from every emitted token.
package tokenize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var tokenPattern = regexp.MustCompile(`("[^"\n]+"|\S+)`)

// UnterminatedQuoteError reports a double quote that never closes.
type UnterminatedQuoteError struct {
	Column int // 1-based rune column of the dangling quote
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("unterminated quote at column %d", e.Column)
}

// Tokenize splits line into tokens. An empty or whitespace-only line yields
// no tokens and no error.
func Tokenize(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	matches := tokenPattern.FindAllStringIndex(line, -1)
	if strings.Count(line, `"`)%2 != 0 {
		return nil, &UnterminatedQuoteError{Column: danglingQuoteColumn(line, matches)}
	}

	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ReplaceAll(line[m[0]:m[1]], `"`, ""))
	}
	return tokens, nil
}

// danglingQuoteColumn finds the first quote that was swallowed by a bare
// word match instead of opening a quoted span.
func danglingQuoteColumn(line string, matches [][]int) int {
	for _, m := range matches {
		tok := line[m[0]:m[1]]
		if isQuotedSpan(tok) {
			continue
		}
		if i := strings.IndexByte(tok, '"'); i >= 0 {
			return utf8.RuneCountInString(line[:m[0]+i]) + 1
		}
	}
	return utf8.RuneCountInString(line[:strings.LastIndexByte(line, '"')]) + 1
}

func isQuotedSpan(tok string) bool {
	return len(tok) >= 3 && tok[0] == '"' && tok[len(tok)-1] == '"' &&
		!strings.Contains(tok[1:len(tok)-1], `"`)
}
