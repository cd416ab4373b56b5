package session

import (
	"testing"

	"github.com/caffeinepub/word-hunt-game/internal/puzzle"
)

// testPuzzle builds the 2x2 puzzle
//
//	A B
//	C D
//
// with "AD" (main diagonal) and "CA" (left column, bottom-up) placed.
func testPuzzle() puzzle.Puzzle {
	return puzzle.Puzzle{
		Grid: [][]byte{{'A', 'B'}, {'C', 'D'}},
		PlacedWords: []puzzle.PlacedWord{
			{Word: "AD", Cells: []puzzle.Cell{{Letter: 'A', Row: 0, Col: 0}, {Letter: 'D', Row: 1, Col: 1}}},
			{Word: "CA", Cells: []puzzle.Cell{{Letter: 'C', Row: 1, Col: 0}, {Letter: 'A', Row: 0, Col: 0}}},
		},
		WordList: []string{"AD", "CA"},
	}
}

func TestPointerFlowMatch(t *testing.T) {
	s := New(testPuzzle())

	s.PointerDown(0, 0)
	s.PointerMove(1, 1)
	word, ok := s.PointerUp()
	if !ok || word != "AD" {
		t.Fatalf("expected AD match, got %q ok=%v", word, ok)
	}
	if found := s.Found(); len(found) != 1 || found[0] != "AD" {
		t.Fatalf("unexpected found list %v", found)
	}
	if s.Complete() {
		t.Fatal("one of two words found, should not be complete")
	}
}

func TestReversedDragFindsPlacedWord(t *testing.T) {
	s := New(testPuzzle())

	// Drag top-down spells "AC"; the placed word is "CA".
	if word, ok := s.Select(0, 0, 1, 0); !ok || word != "CA" {
		t.Fatalf("expected CA via reversed branch, got %q ok=%v", word, ok)
	}
}

func TestNonCollinearDragYieldsNoMatch(t *testing.T) {
	s := New(testPuzzle())

	s.PointerDown(0, 0)
	s.PointerMove(1, 1) // valid so far
	s.PointerMove(-1, 1)
	if word, ok := s.PointerUp(); ok || word != "" {
		t.Fatalf("expected no match after incoherent drag, got %q", word)
	}
	if len(s.Found()) != 0 {
		t.Fatal("found set should be empty")
	}
}

func TestDuplicateFindDoesNotMatchTwice(t *testing.T) {
	s := New(testPuzzle())

	if _, ok := s.Select(0, 0, 1, 1); !ok {
		t.Fatal("first find should match")
	}
	if _, ok := s.Select(0, 0, 1, 1); ok {
		t.Fatal("already-found word should not match again")
	}
	if found, total := s.Progress(); found != 1 || total != 2 {
		t.Fatalf("progress = %d/%d, want 1/2", found, total)
	}
}

func TestCompleteAfterAllWordsFound(t *testing.T) {
	s := New(testPuzzle())

	s.Select(0, 0, 1, 1) // AD
	s.Select(1, 0, 0, 0) // CA
	if !s.Complete() {
		t.Fatal("expected complete after both words found")
	}
	if remaining := s.Remaining(); len(remaining) != 0 {
		t.Fatalf("remaining should be empty, got %v", remaining)
	}
}

func TestPointerUpWithoutDown(t *testing.T) {
	s := New(testPuzzle())
	if word, ok := s.PointerUp(); ok || word != "" {
		t.Fatalf("pointer-up without drag should be a no-op, got %q", word)
	}
}

func TestMoveWithoutDownIgnored(t *testing.T) {
	s := New(testPuzzle())
	s.PointerMove(1, 1)
	if word, ok := s.PointerUp(); ok || word != "" {
		t.Fatalf("expected no match, got %q", word)
	}
}

func TestEmptyWordListNeverComplete(t *testing.T) {
	s := New(puzzle.Puzzle{Grid: [][]byte{{'A'}}})
	if s.Complete() {
		t.Fatal("a puzzle with zero placed words is never complete")
	}
}

func TestSessionIDsUnique(t *testing.T) {
	a, b := New(testPuzzle()), New(testPuzzle())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
}
