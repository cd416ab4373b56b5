// internal/puzzle/types.go
//
// Core type definitions for the word-search puzzle generator.
// Defines:
//   - Cell: one grid position and the letter it holds.
//   - PlacedWord: a word together with the cells it occupies.
//   - Puzzle: the generated grid plus placement metadata.

package puzzle

// Cell identifies one grid position and its letter.
// Immutable once created.
type Cell struct {
	Letter byte `json:"letter"` // uppercase A–Z
	Row    int  `json:"row"`
	Col    int  `json:"col"`
}

// PlacedWord records where a word ended up in the grid.
// len(Cells) == len(Word) and Cells[i].Letter == Word[i] for all i.
type PlacedWord struct {
	Word  string `json:"word"`
	Cells []Cell `json:"cells"`
}

// Puzzle is the output of Generate. The grid is treated as read-only by
// every downstream consumer (selection engine, HTTP layer).
type Puzzle struct {
	Grid        [][]byte     `json:"-"`
	PlacedWords []PlacedWord `json:"placedWords"`
	WordList    []string     `json:"wordList"` // PlacedWords[i].Word, in placement order
}

// Size returns the grid dimension (grids are always square).
func (p Puzzle) Size() int { return len(p.Grid) }

// Rows renders the grid as strings, one per row. Convenient for JSON
// payloads and tests; the byte grid itself stays unexported from wire types.
func (p Puzzle) Rows() []string {
	out := make([]string, len(p.Grid))
	for i, r := range p.Grid {
		out[i] = string(r)
	}
	return out
}
