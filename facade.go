// Package sherlock decides whether a chess position is reachable from the
// standard starting array by a sequence of legal moves. It is the legality
// façade of the retrograde-analysis engine: construct a fact store from a
// board, saturate it against the rule catalogue in package engine, and
// report the verdict.
package sherlock

import (
	"sherlock/analysis"
	"sherlock/board"
	"sherlock/engine"
)

// ColoredPiece names a piece kind together with the side that owns it.
type ColoredPiece struct {
	Color board.Color
	Kind  board.PieceType
}

// AllColoredPieces is the canonical iteration order of the 12 (color, kind)
// pairs: white(king,queen,rook,bishop,knight,pawn), then black in the same
// kind order. LegalPiecesOn reports its results in this order.
var AllColoredPieces = [12]ColoredPiece{
	{board.White, board.PieceTypeKing}, {board.White, board.PieceTypeQueen}, {board.White, board.PieceTypeRook},
	{board.White, board.PieceTypeBishop}, {board.White, board.PieceTypeKnight}, {board.White, board.PieceTypePawn},
	{board.Black, board.PieceTypeKing}, {board.Black, board.PieceTypeQueen}, {board.Black, board.PieceTypeRook},
	{board.Black, board.PieceTypeBishop}, {board.Black, board.PieceTypeKnight}, {board.Black, board.PieceTypePawn},
}

// IsLegal reports whether b is reachable from the standard starting array by
// some sequence of legal moves. It builds a fresh fact store, saturates it
// against the full rule catalogue, and returns whether a contradiction was
// ever raised.
func IsLegal(b *board.Board) bool {
	return !Analyze(b).IsIllegal()
}

// Analyze builds a fact store from b and saturates it, returning the fact
// store itself rather than just the boolean verdict. Exposed for the CLI's
// verbose mode and for tests that need to inspect which rule rejected a
// position; ordinary callers want IsLegal.
func Analyze(b *board.Board) *analysis.Analysis {
	a := analysis.New(b)
	engine.Run(b, a, engine.DefaultRules())
	return a
}

// LegalPiecesOn tries each of the 12 colored piece kinds on sq and returns
// those that yield a legal position, in canonical order. Placements that
// would leave the side not to move in check are rejected before legality is
// even considered.
func LegalPiecesOn(b *board.Board, sq board.Square) []ColoredPiece {
	var out []ColoredPiece
	for _, cp := range AllColoredPieces {
		nb, ok := TrySetPiece(b, cp.Color, cp.Kind, sq)
		if !ok {
			continue
		}
		if IsLegal(nb) {
			out = append(out, cp)
		}
	}
	return out
}

// TrySetPiece returns a copy of b with (color, kind) placed on sq, or false
// if doing so leaves the side not to move in check. This is a forward
// check entirely separate from retrograde legality; deciding whether a
// square can physically hold a piece is the board collaborator's concern,
// not the legality engine's.
func TrySetPiece(b *board.Board, color board.Color, kind board.PieceType, sq board.Square) (*board.Board, bool) {
	nb := *b
	nb.SetPiece(sq, board.PieceFromType(color, kind))
	if nb.InCheck(opposite(nb.SideToMove())) {
		return nil, false
	}
	return &nb, true
}

func opposite(c board.Color) board.Color {
	if c == board.White {
		return board.Black
	}
	return board.White
}
