// internal/puzzle/generator.go
//
// Word-search grid generation.
// Responsibilities:
//   - Place a subset of a word list into a square grid along straight lines
//     in one of 8 directions, allowing legitimate letter overlaps.
//   - Attempt longer words first while the grid is sparse (shuffle, then
//     stable sort by descending length).
//   - Fill unused cells with uniformly random letters.
//
// Notes:
//   - Generation cannot fail: words that do not fit are skipped, and a
//     puzzle with fewer (even zero) placed words is a valid output.
//   - Randomness comes from an injected *rand.Rand so tests can fix a seed.

package puzzle

import (
	"math/rand"
	"sort"
	"time"
)

const (
	// DefaultMaxWords caps how many words are placed per puzzle,
	// independent of word-list size. Tunable via Options.
	DefaultMaxWords = 20

	// DefaultMaxAttempts bounds random placement tries per word.
	DefaultMaxAttempts = 100
)

// directions are the 8 unit step vectors a word may lie along.
var directions = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Options tunes generation. Zero values select defaults.
type Options struct {
	MaxWords    int        // placement cap; <=0 means DefaultMaxWords
	MaxAttempts int        // tries per word; <=0 means DefaultMaxAttempts
	Rand        *rand.Rand // nil means a time-seeded source
}

// Generate builds a gridSize×gridSize puzzle from words.
//
// Callers supply deduplicated uppercase alphabetic words; no validation is
// performed here. The returned grid is immutable by convention once this
// function returns.
func Generate(words []string, gridSize int, opts Options) Puzzle {
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if gridSize < 0 {
		gridSize = 0
	}

	grid := make([][]byte, gridSize)
	for r := range grid {
		grid[r] = make([]byte, gridSize) // zero byte = unassigned
	}

	// Shuffle first so same-length words are not placed in input order,
	// then stable-sort longest-first: long words need a sparse grid.
	shuffled := append([]string(nil), words...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	sort.SliceStable(shuffled, func(i, j int) bool {
		return len(shuffled[i]) > len(shuffled[j])
	})

	var placed []PlacedWord
	for _, w := range shuffled {
		if len(placed) >= opts.MaxWords {
			break
		}
		if w == "" {
			continue
		}
		for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
			if gridSize == 0 {
				break
			}
			row := rng.Intn(gridSize)
			col := rng.Intn(gridSize)
			dir := directions[rng.Intn(len(directions))]
			if cells, ok := tryPlace(grid, w, row, col, dir[0], dir[1]); ok {
				placed = append(placed, PlacedWord{Word: w, Cells: cells})
				break
			}
		}
		// All attempts failed: skip silently, the puzzle just has one word less.
	}

	// Random filler for every cell no word claimed.
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			if grid[r][c] == 0 {
				grid[r][c] = byte('A' + rng.Intn(26))
			}
		}
	}

	list := make([]string, len(placed))
	for i, pw := range placed {
		list[i] = pw.Word
	}
	return Puzzle{Grid: grid, PlacedWords: placed, WordList: list}
}

// tryPlace writes word into grid starting at (row,col) stepping by
// (dRow,dCol), if every needed cell is in bounds and either unassigned or
// already holding the required letter. Commits only on success.
func tryPlace(grid [][]byte, word string, row, col, dRow, dCol int) ([]Cell, bool) {
	size := len(grid)
	r, c := row, col
	for i := 0; i < len(word); i++ {
		if r < 0 || r >= size || c < 0 || c >= size {
			return nil, false
		}
		if got := grid[r][c]; got != 0 && got != word[i] {
			return nil, false
		}
		r += dRow
		c += dCol
	}

	cells := make([]Cell, len(word))
	r, c = row, col
	for i := 0; i < len(word); i++ {
		grid[r][c] = word[i]
		cells[i] = Cell{Letter: word[i], Row: r, Col: c}
		r += dRow
		c += dCol
	}
	return cells, true
}
