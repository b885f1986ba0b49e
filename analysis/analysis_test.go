package analysis_test

import (
	"strings"
	"testing"

	"sherlock/analysis"
	"sherlock/board"
)

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestNewIsNotIllegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	if a.IsIllegal() {
		t.Fatalf("fresh fact store for the starting position must not be illegal: %s", a.IllegalReason())
	}
}

func TestNewSeedsCastlingRooksAndKingsSteady(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	steady := a.Steady()
	for _, sq := range []board.Square{4, 0, 7, 60, 56, 63} {
		if steady&(uint64(1)<<uint(sq)) == 0 {
			t.Errorf("expected square %d steady from the castling seed, got steady=%#x", sq, steady)
		}
	}
}

func TestIntersectOriginsIsMonotone(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)

	sq := board.Square(8) // a2, a white pawn
	before := a.Origins(sq)
	if changed := a.IntersectOrigins(sq, before); changed {
		t.Fatalf("intersecting with the same set must report no change")
	}

	narrower := before & (before - 1) // drop the lowest set bit, if any
	if narrower == before {
		t.Skip("origins(a2) has at most one candidate; nothing to narrow")
	}
	if changed := a.IntersectOrigins(sq, narrower); !changed {
		t.Fatalf("narrowing origins(a2) should report a change")
	}
	if got := a.Origins(sq); got&^narrower != 0 {
		t.Fatalf("origins(a2) grew after a narrowing intersect: got %#x, want subset of %#x", got, narrower)
	}
}

func TestIntersectOriginsToEmptyMarksIllegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	sq := board.Square(8)
	a.IntersectOrigins(sq, 0)
	if !a.IsIllegal() {
		t.Fatalf("narrowing origins to the empty set must mark the fact store illegal")
	}
	if a.IllegalReason() != "origins-empty" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestMarkIllegalIsSticky(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.MarkIllegal("first")
	a.MarkIllegal("second")
	if a.IllegalReason() != "first" {
		t.Fatalf("the first illegal reason must win, got %q", a.IllegalReason())
	}
}

func TestMutatorsAreNoOpsOnceIllegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.MarkIllegal("forced")
	before := a.Progress()

	a.IntersectOrigins(8, 0)
	a.IntersectDestinies(8, 0, false)
	a.MarkSteady(8)
	a.TightenCaptures(board.White, 99, 99)
	a.SetParity(board.White, analysis.ParityEven)
	a.SetMissing(board.White, board.PieceTypePawn, 8)

	if a.Progress() != before {
		t.Fatalf("no mutator should make further progress once illegal")
	}
}

func TestTightenCapturesEmptyIntervalMarksIllegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.TightenCaptures(board.White, 5, 10)
	a.TightenCaptures(board.White, 0, 2)
	if !a.IsIllegal() {
		t.Fatalf("tightening [lo,hi] to an empty interval must mark illegal")
	}
}

func TestSetParityConflictMarksIllegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.SetParity(board.White, analysis.ParityEven)
	a.SetParity(board.White, analysis.ParityOdd)
	if !a.IsIllegal() {
		t.Fatalf("contradicting an already-proven parity must mark illegal")
	}
}

func TestMarkSteadyPinsOriginAndDestiny(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	sq := board.Square(9) // b2, a white pawn
	a.MarkSteady(sq)
	if got := a.Origins(sq); got != uint64(1)<<uint(sq) {
		t.Errorf("origins(b2) should pin to {b2} once steady, got %#x", got)
	}
	squares, captured := a.Destinies(sq)
	if squares != uint64(1)<<uint(sq) || captured {
		t.Errorf("destinies(b2) should pin to {b2},captured=false once steady, got squares=%#x captured=%t", squares, captured)
	}
}

func TestSetMissingRefusesToShrink(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.SetMissing(board.White, board.PieceTypePawn, 3)
	if changed := a.SetMissing(board.White, board.PieceTypePawn, 1); changed {
		t.Fatalf("SetMissing must not let a missing count decrease")
	}
	if got := a.Missing(board.White, board.PieceTypePawn); got != 3 {
		t.Fatalf("missing count should remain 3, got %d", got)
	}
}

func TestProgressOnlyAdvancesOnRealNarrowing(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	before := a.Progress()
	a.IntersectOrigins(8, a.Origins(8))
	if a.Progress() != before {
		t.Fatalf("re-asserting an unchanged set must not advance progress")
	}
}

func TestDebugStringMentionsIllegalReason(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	a.MarkIllegal("material-king-count")
	out := a.DebugString()
	if out == "" {
		t.Fatalf("DebugString must not be empty")
	}
	if !strings.Contains(out, "material-king-count") {
		t.Fatalf("DebugString must mention the illegal reason, got %q", out)
	}
}
