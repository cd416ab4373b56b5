// internal/words/words.go
//
// Provides word list management for the puzzle generator.
//
// Responsibilities:
//   - Load the word list from an environment-provided file or fall back to
//     the embedded default.
//   - Normalize to uppercase A–Z, filter by length, and deduplicate
//     preserving first occurrence.
//   - Supply utility functions like List, IsWord, and Stats.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load the list from that path.
//   2. Otherwise fall back to the embedded default from assets/wordlist.txt.
//
// Environment variables:
//   WORDS_FILE=/path/to/wordlist.txt
//
// Constraints:
//   • Words must be 3–15 alphabetic letters.
//   • Lists are normalized to uppercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/caffeinepub/word-hunt-game/assets"
)

const (
	minLen = 3
	maxLen = 15
)

var (
	initOnce   sync.Once
	list       []string            // normalized, deduplicated
	wordSet    map[string]struct{} // membership lookups
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			raw, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			var err error
			raw, err = assets.WordList()
			if err != nil {
				initialErr = err
				return
			}
		}

		list = Normalize(raw)
		wordSet = toSet(list)

		if len(list) == 0 {
			initialErr = errors.New("words: word list is empty")
		}
	})
	return initialErr
}

// Normalize uppercases, filters to 3–15 alphabetic letters, and
// deduplicates preserving first occurrence. Exported so callers supplying
// their own lists over HTTP get the same treatment as the embedded one.
func Normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) < minLen || len(w) > maxLen || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// readWordFile loads one word per line from a file; normalization happens
// in Normalize afterwards.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// toSet converts a list of strings into a lookup set.
func toSet(in []string) map[string]struct{} {
	m := make(map[string]struct{}, len(in))
	for _, w := range in {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// List returns the loaded word list. The slice is shared; callers must not
// mutate it.
func List() []string { return list }

// IsWord reports whether w is in the loaded list.
func IsWord(w string) bool {
	_, ok := wordSet[strings.ToUpper(w)]
	return ok
}

// Stats returns the number of loaded words.
func Stats() int { return len(list) }
