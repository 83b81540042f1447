package lineedit

import (
	"sort"
	"strings"
)

// CompleteFunc returns the candidate words for the word being typed.
// prior holds the complete words before the cursor word.
type CompleteFunc func(prior []string, word string) []string

// Completer adapts a CompleteFunc to readline's AutoCompleter.
type Completer struct {
	Complete CompleteFunc
}

// Do implements readline.AutoCompleter. It returns the suffixes that extend
// the word under the cursor, each followed by a space, and the length of
// the word already typed.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	if c.Complete == nil || pos > len(line) {
		return nil, 0
	}

	head := string(line[:pos])
	word := ""
	if !strings.HasSuffix(head, " ") && !strings.HasSuffix(head, "\t") {
		fields := strings.Fields(head)
		if len(fields) > 0 {
			word = fields[len(fields)-1]
		}
	}
	prior := strings.Fields(strings.TrimSuffix(head, word))

	var out [][]rune
	seen := make(map[string]bool)
	candidates := append([]string(nil), c.Complete(prior, word)...)
	sort.Strings(candidates)
	for _, cand := range candidates {
		if !strings.HasPrefix(cand, word) || seen[cand] {
			continue
		}
		seen[cand] = true
		out = append(out, []rune(cand[len(word):]+" "))
	}
	return out, len([]rune(word))
}
