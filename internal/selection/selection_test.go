package selection_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/word-hunt-game/internal/puzzle"
	"github.com/caffeinepub/word-hunt-game/internal/selection"
)

// grid2x2 is the 2x2 grid
//
//	A B
//	C D
var grid2x2 = [][]byte{{'A', 'B'}, {'C', 'D'}}

func TestIsStraightLine(t *testing.T) {
	cases := []struct {
		name           string
		r1, c1, r2, c2 int
		want           bool
	}{
		{"SingleCell", 3, 3, 3, 3, true},
		{"Horizontal", 2, 0, 2, 7, true},
		{"Vertical", 0, 4, 9, 4, true},
		{"DiagonalDown", 0, 0, 5, 5, true},
		{"DiagonalUp", 5, 0, 0, 5, true},
		{"DiagonalBackward", 4, 4, 1, 1, true},
		{"KnightMove", 0, 0, 1, 2, false},
		{"OffDiagonal", 0, 0, 3, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, selection.IsStraightLine(tc.r1, tc.c1, tc.r2, tc.c2))
		})
	}
}

func TestSelectedCellsDiagonal(t *testing.T) {
	cells := selection.SelectedCells(grid2x2, 0, 0, 1, 1)
	require.Len(t, cells, 2)
	assert.Equal(t, puzzle.Cell{Letter: 'A', Row: 0, Col: 0}, cells[0])
	assert.Equal(t, puzzle.Cell{Letter: 'D', Row: 1, Col: 1}, cells[1])
	assert.Equal(t, "AD", selection.CellsToWord(cells))
}

func TestSelectedCellsVertical(t *testing.T) {
	cells := selection.SelectedCells(grid2x2, 0, 0, 1, 0)
	require.Len(t, cells, 2)
	assert.Equal(t, "AC", selection.CellsToWord(cells))

	// Reversed branch: the traversal spells "AC" but "CA" is the word.
	word, ok := selection.Validate(cells, map[string]struct{}{"CA": {}})
	assert.True(t, ok)
	assert.Equal(t, "CA", word)
}

func TestSelectedCellsSingle(t *testing.T) {
	cells := selection.SelectedCells(grid2x2, 1, 0, 1, 0)
	require.Len(t, cells, 1)
	assert.Equal(t, "C", selection.CellsToWord(cells))
}

func TestSelectedCellsNonCollinear(t *testing.T) {
	grid := [][]byte{
		{'A', 'B', 'C'},
		{'D', 'E', 'F'},
		{'G', 'H', 'I'},
	}
	// |Δrow|=1, |Δcol|=2: neither zero nor equal.
	assert.Nil(t, selection.SelectedCells(grid, 0, 0, 1, 2))

	word, ok := selection.Validate(nil, map[string]struct{}{"AB": {}})
	assert.False(t, ok)
	assert.Empty(t, word)
}

func TestSelectedCellsOutOfBounds(t *testing.T) {
	assert.Nil(t, selection.SelectedCells(grid2x2, -1, 0, 1, 0))
	assert.Nil(t, selection.SelectedCells(grid2x2, 0, 0, 2, 2))
	assert.Nil(t, selection.SelectedCells(grid2x2, 0, 5, 0, 5))
}

// Length and endpoint invariants for every straight start/end pair on a
// small grid: steps+1 cells, first equals start, last equals end, unit step.
func TestSelectedCellsShape(t *testing.T) {
	grid := [][]byte{
		{'A', 'B', 'C', 'D'},
		{'E', 'F', 'G', 'H'},
		{'I', 'J', 'K', 'L'},
		{'M', 'N', 'O', 'P'},
	}
	for r1 := 0; r1 < 4; r1++ {
		for c1 := 0; c1 < 4; c1++ {
			for r2 := 0; r2 < 4; r2++ {
				for c2 := 0; c2 < 4; c2++ {
					if !selection.IsStraightLine(r1, c1, r2, c2) {
						continue
					}
					cells := selection.SelectedCells(grid, r1, c1, r2, c2)
					steps := max(abs(r2-r1), abs(c2-c1))
					require.Len(t, cells, steps+1)
					assert.Equal(t, r1, cells[0].Row)
					assert.Equal(t, c1, cells[0].Col)
					assert.Equal(t, r2, cells[steps].Row)
					assert.Equal(t, c2, cells[steps].Col)
				}
			}
		}
	}
}

// Every placed word must be discoverable by dragging its own endpoints,
// in either order.
func TestValidateAgainstGeneratedPuzzle(t *testing.T) {
	p := puzzle.Generate(
		[]string{"ENGINE", "RIVER", "STONE", "FALCON", "MARBLE"},
		15,
		puzzle.Options{Rand: rand.New(rand.NewSource(9))},
	)
	require.NotEmpty(t, p.PlacedWords)

	remaining := make(map[string]struct{})
	for _, w := range p.WordList {
		remaining[w] = struct{}{}
	}

	for _, pw := range p.PlacedWords {
		first := pw.Cells[0]
		last := pw.Cells[len(pw.Cells)-1]

		cells := selection.SelectedCells(p.Grid, first.Row, first.Col, last.Row, last.Col)
		word, ok := selection.Validate(cells, remaining)
		require.True(t, ok, "forward drag for %q", pw.Word)
		assert.Equal(t, pw.Word, word)

		// Drag from the other endpoint: the reversed branch must fire and
		// still return the placed word, not its reversal.
		cells = selection.SelectedCells(p.Grid, last.Row, last.Col, first.Row, first.Col)
		word, ok = selection.Validate(cells, remaining)
		require.True(t, ok, "reverse drag for %q", pw.Word)
		assert.Equal(t, pw.Word, word)
	}
}

// Extraction holds no hidden state: identical arguments on an unchanged
// grid give identical results.
func TestSelectedCellsIdempotent(t *testing.T) {
	a := selection.SelectedCells(grid2x2, 0, 0, 1, 1)
	b := selection.SelectedCells(grid2x2, 0, 0, 1, 1)
	assert.Equal(t, a, b)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
