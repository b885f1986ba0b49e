package engine_test

import (
	"testing"

	"sherlock/analysis"
	"sherlock/board"
	"sherlock/engine"
)

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func run(t *testing.T, fen string) *analysis.Analysis {
	t.Helper()
	b := mustParse(t, fen)
	a := analysis.New(b)
	engine.Run(b, a, engine.DefaultRules())
	return a
}

func TestStartingPositionIsLegal(t *testing.T) {
	a := run(t, board.FENStartPos)
	if a.IsIllegal() {
		t.Fatalf("starting position must be legal, got illegal reason %q", a.IllegalReason())
	}
}

func TestRunConvergesToAFixedPoint(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	a := analysis.New(b)
	ok := engine.Run(b, a, engine.DefaultRules())
	if !ok {
		t.Fatalf("Run reported illegal for the starting position")
	}
	before := a.Progress()
	engine.Run(b, a, engine.DefaultRules())
	if a.Progress() != before {
		t.Fatalf("re-running the rule set against an already-saturated store must not make further progress")
	}
}

func TestTooManyKingsIsIllegal(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("a position with two white kings must be illegal")
	}
	if a.IllegalReason() != "material-king-count" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestNineWhitePawnsIsIllegal(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/4P3/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("nine white pawns must be illegal")
	}
	if a.IllegalReason() != "material-too-many-pawns" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestPromotionOverflowIsIllegal(t *testing.T) {
	// White has an extra queen and every pawn still on the board: no
	// pawn could have promoted to supply them.
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNQQKBNR w KQkq - 0 1"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("an extra queen with all eight pawns still present must be illegal")
	}
	if a.IllegalReason() != "material-promotion-overflow" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestCastlingRightsRequireKingAndRookHome(t *testing.T) {
	// White king has moved off e1 but the FEN still claims kingside rights.
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1KNR w KQkq - 0 1"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("claiming castling rights with the king off its home square must be illegal")
	}
	if a.IllegalReason() != "castling-rights-displaced" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestEnPassantTargetPinsPushingPawnOrigin(t *testing.T) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	a := run(t, fen)
	if a.IsIllegal() {
		t.Fatalf("a consistent en-passant target must be legal, got %q", a.IllegalReason())
	}
	const d5, d7 = board.Square(35), board.Square(51)
	if got := a.Origins(d5); got != uint64(1)<<uint(d7) {
		t.Errorf("origins(d5) should pin to {d7} once the en-passant target fixes it, got %#x", got)
	}
}

func TestEnPassantTargetWithOccupiedHomeIsIllegal(t *testing.T) {
	// d6 is claimed as an en-passant target, but d5's "origin" square d7 is
	// occupied by another black pawn, so the pawn on d5 cannot have just
	// double-pushed from it: an inconsistent en-passant declaration.
	fen := "k7/3p4/8/3pP3/8/8/8/7K w - d6 0 2"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("an en-passant target whose home square is occupied must be illegal")
	}
}

func TestClearingEnPassantMakesTheSamePositionLegal(t *testing.T) {
	fen := "k7/3p4/8/3pP3/8/8/8/7K w - - 0 2"
	a := run(t, fen)
	if a.IsIllegal() {
		t.Fatalf("the same board without an en-passant claim must be legal, got %q", a.IllegalReason())
	}
}

func TestStartingPositionHasEvenParity(t *testing.T) {
	a := run(t, board.FENStartPos)
	if a.IsIllegal() {
		t.Fatalf("starting position must be legal")
	}
	if got := a.ParityOf(board.White); got != analysis.ParityEven {
		t.Errorf("White's parity in the untouched starting position should be even, got %s", got)
	}
	if got := a.ParityOf(board.Black); got != analysis.ParityEven {
		t.Errorf("Black's parity in the untouched starting position should be even, got %s", got)
	}
}

func TestParitySideToMoveConflictIsIllegal(t *testing.T) {
	// Every piece but the knights is steady and each side's knights stand on
	// their own two home squares, so both sides have played an even number
	// of moves; but Black is claimed to move, which only happens after White
	// has played one more half-move than Black.
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"
	a := run(t, fen)
	if !a.IsIllegal() {
		t.Fatalf("even parity on both sides with Black to move must be illegal")
	}
	if a.IllegalReason() != "parity-side-to-move-conflict" {
		t.Errorf("unexpected illegal reason: %q", a.IllegalReason())
	}
}

func TestCastlingSeededSquaresPinToThemselves(t *testing.T) {
	// Kings and castling rooks are pinned to their own square directly by
	// the castling seed in analysis.New, independent of any later rule.
	a := run(t, board.FENStartPos)
	if a.IsIllegal() {
		t.Fatalf("starting position must be legal, got %q", a.IllegalReason())
	}
	for _, sq := range []board.Square{0, 4, 7, 56, 60, 63} {
		if got := a.Origins(sq); got != uint64(1)<<uint(sq) {
			t.Errorf("origins(%d) should pin to itself, got %#x", sq, got)
		}
	}
}

func TestMissingPieceIsRecordedNotRequiredOnBoard(t *testing.T) {
	// White is simply missing a knight: fewer pieces than the start, no
	// promotion claim, nothing contradictory.
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKB1R w KQkq - 0 1"
	a := run(t, fen)
	if a.IsIllegal() {
		t.Fatalf("a simple missing knight must be legal, got %q", a.IllegalReason())
	}
	if got := a.Missing(board.White, board.PieceTypeKnight); got != 1 {
		t.Errorf("expected exactly one missing white knight, got %d", got)
	}
}

func TestRunStopsAtFirstContradiction(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	b := mustParse(t, fen)
	a := analysis.New(b)
	ok := engine.Run(b, a, engine.DefaultRules())
	if ok {
		t.Fatalf("Run must report false once the store turns illegal")
	}
}

func TestOriginExclusivityNarrowsDriftedPawnHomeFile(t *testing.T) {
	// Every black pawn except g7 sits on its home rank (steady, pinned to
	// itself); the eighth pawn on g5 has no file-distance evidence of its
	// own, so only elimination against the seven already-claimed home files
	// can narrow it down to the one remaining candidate, g7.
	fen := "k7/pppppp1p/8/6p1/8/8/8/7K w - - 0 1"
	a := run(t, fen)
	if a.IsIllegal() {
		t.Fatalf("a single drifted pawn must be legal, got %q", a.IllegalReason())
	}
	const g5, g7 = board.Square(38), board.Square(54)
	if got := a.Origins(g5); got != uint64(1)<<uint(g7) {
		t.Errorf("origins(g5) should narrow to {g7} by elimination, got %#x", got)
	}
}

func TestEnPassantHomeSquareUnblocksBoxedBishop(t *testing.T) {
	// The bishop on c1 can only ever be proven steady once its one open
	// exit, d2, is accounted for. d2 is empty because White's d-pawn just
	// double-pushed to d4, and the declared en-passant target proves that
	// double push was the very last half-move played, so d2 was occupied by
	// that pawn for the entire game up to this point: never a real escape.
	fen := "k7/8/8/8/3P4/8/1P6/2B4K b - d3 0 1"
	a := run(t, fen)
	if a.IsIllegal() {
		t.Fatalf("a consistent en-passant double-push must be legal, got %q", a.IllegalReason())
	}
	const c1 = board.Square(2)
	if a.Steady()&(uint64(1)<<uint(c1)) == 0 {
		t.Errorf("bishop on c1 should be proven steady once d2 is recognized as never having been open")
	}
}

func TestDeterministicAcrossRepeatedRuns(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	a1 := run(t, fen)
	a2 := run(t, fen)
	if a1.IsIllegal() != a2.IsIllegal() {
		t.Fatalf("analyzing the same FEN twice must reach the same verdict")
	}
}
