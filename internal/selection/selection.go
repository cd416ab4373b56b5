// internal/selection/selection.go
//
// Selection engine for word-search drag gestures.
// Responsibilities:
//   - Decide whether a start/end cell pair forms a straight line
//     (horizontal, vertical, or pure diagonal).
//   - Extract the cells along such a line from a generated grid.
//   - Resolve a cell sequence to a word match, forward or reversed,
//     against the caller's set of words still to be found.
//
// Notes:
//   - Stateless and free of randomness: every function is pure over its
//     arguments, so repeated calls on an unchanged grid return identical
//     results. The caller owns the found-words set.
//   - "No match" is an ordinary return value, never an error.

package selection

import "github.com/caffeinepub/word-hunt-game/internal/puzzle"

// IsStraightLine reports whether (r1,c1)→(r2,c2) is a selectable line:
// a single cell, a horizontal or vertical run, or a pure diagonal.
// These are exactly the directions the generator places words along.
func IsStraightLine(r1, c1, r2, c2 int) bool {
	dr, dc := r2-r1, c2-c1
	return dr == 0 || dc == 0 || abs(dr) == abs(dc)
}

// SelectedCells returns the cells from start to end inclusive, stepping by
// a unit vector, with letters read live from grid. It returns nil when the
// pair is not a straight line or either endpoint is out of bounds.
func SelectedCells(grid [][]byte, r1, c1, r2, c2 int) []puzzle.Cell {
	if !IsStraightLine(r1, c1, r2, c2) {
		return nil
	}
	size := len(grid)
	if !inBounds(size, r1, c1) || !inBounds(size, r2, c2) {
		return nil
	}

	steps := max(abs(r2-r1), abs(c2-c1))
	if steps == 0 {
		return []puzzle.Cell{{Letter: grid[r1][c1], Row: r1, Col: c1}}
	}
	stepR, stepC := sign(r2-r1), sign(c2-c1)

	cells := make([]puzzle.Cell, 0, steps+1)
	r, c := r1, c1
	for i := 0; i <= steps; i++ {
		cells = append(cells, puzzle.Cell{Letter: grid[r][c], Row: r, Col: c})
		r += stepR
		c += stepC
	}
	return cells
}

// CellsToWord concatenates cell letters in sequence order.
func CellsToWord(cells []puzzle.Cell) string {
	b := make([]byte, len(cells))
	for i, cell := range cells {
		b[i] = cell.Letter
	}
	return string(b)
}

// Validate checks the selection's word — or its reversal — against the
// words still to be found. The reversed branch makes every placed word
// discoverable by dragging from either endpoint. Returns ("", false) on
// no match.
func Validate(cells []puzzle.Cell, remaining map[string]struct{}) (string, bool) {
	if len(cells) == 0 {
		return "", false
	}
	forward := CellsToWord(cells)
	if _, ok := remaining[forward]; ok {
		return forward, true
	}
	reversed := reverse(forward)
	if _, ok := remaining[reversed]; ok {
		return reversed, true
	}
	return "", false
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func inBounds(size, r, c int) bool {
	return r >= 0 && r < size && c >= 0 && c < size
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
