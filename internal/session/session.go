// internal/session/session.go
//
// Game session controller for a single word-hunt puzzle.
// Responsibilities:
//   - Own one generated puzzle and the monotonic set of found words.
//   - Drive the drag-gesture state machine: Idle → Selecting (pointer down),
//     Selecting → Selecting (pointer move), Selecting → Idle (pointer up,
//     validate and maybe record a find).
//   - Report progress and completion.
//
// Notes:
//   - An incoherent drag is not an error: a non-collinear move yields an
//     empty selection and pointer-up simply reports no match.
//   - The found set only grows; it resets by starting a new session with a
//     fresh puzzle.
//   - Sessions are reached concurrently from HTTP handlers, so all state
//     transitions are guarded by a mutex.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/caffeinepub/word-hunt-game/internal/puzzle"
	"github.com/caffeinepub/word-hunt-game/internal/selection"
)

// Session holds the state of one word-hunt game.
type Session struct {
	ID     string
	Puzzle puzzle.Puzzle

	mu        sync.Mutex
	selecting bool
	startRow  int
	startCol  int
	cells     []puzzle.Cell
	found     map[string]struct{}
	foundList []string // found words in discovery order
}

// New constructs a session around a generated puzzle.
func New(p puzzle.Puzzle) *Session {
	return &Session{
		ID:     randomID(),
		Puzzle: p,
		found:  make(map[string]struct{}),
	}
}

// PointerDown starts a selection anchored at (row, col).
// The initial selection is the single pressed cell.
func (s *Session) PointerDown(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selecting = true
	s.startRow, s.startCol = row, col
	s.cells = selection.SelectedCells(s.Puzzle.Grid, row, col, row, col)
}

// PointerMove recomputes the selection from the anchor to (row, col).
// A pair that fails the line test forces the selection empty.
// Ignored when no drag is in progress.
func (s *Session) PointerMove(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selecting {
		return
	}
	s.cells = selection.SelectedCells(s.Puzzle.Grid, s.startRow, s.startCol, row, col)
}

// PointerUp ends the drag: validates the current selection against the
// words not yet found, records a match, and clears the selection.
func (s *Session) PointerUp() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selecting {
		return "", false
	}
	s.selecting = false
	cells := s.cells
	s.cells = nil

	word, ok := selection.Validate(cells, s.remainingLocked())
	if ok {
		s.found[word] = struct{}{}
		s.foundList = append(s.foundList, word)
	}
	return word, ok
}

// Select is the one-shot form used by the HTTP layer: a full drag from
// (r1,c1) to (r2,c2) collapsed into down+move+up.
func (s *Session) Select(r1, c1, r2, c2 int) (string, bool) {
	s.PointerDown(r1, c1)
	s.PointerMove(r2, c2)
	return s.PointerUp()
}

// Found returns the found words in discovery order.
func (s *Session) Found() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.foundList...)
}

// Remaining returns the set of placed words not yet found.
func (s *Session) Remaining() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

// remainingLocked builds the remaining set; callers hold s.mu.
func (s *Session) remainingLocked() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Puzzle.WordList))
	for _, w := range s.Puzzle.WordList {
		if _, done := s.found[w]; !done {
			out[w] = struct{}{}
		}
	}
	return out
}

// Progress reports found vs total word counts.
func (s *Session) Progress() (found, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.found), len(s.Puzzle.WordList)
}

// Complete reports whether every placed word has been found.
func (s *Session) Complete() bool {
	found, total := s.Progress()
	return total > 0 && found == total
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
