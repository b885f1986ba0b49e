package board

import (
	"errors"
)

// Startpos is the FEN of the standard initial array.
const Startpos = FENStartPos

// ParseFen parses a FEN string and panics on invalid input. Convenience wrapper
// around ParseFEN for call sites that already guarantee well-formed input (tests,
// REPL tools with pre-validated strings).
func ParseFen(fen string) Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return *b
}

// ToFen is a lower-camel alias for ToFEN, kept for call sites that prefer the
// lower-camel spelling used elsewhere in the package's public API.
func (b *Board) ToFen() string { return b.ToFEN() }

// OurKingInCheck reports whether the side to move has its king in check.
func (b *Board) OurKingInCheck() bool { return b.InCheck(b.sideToMove) }

func algebraicToIndex(alg string) (int, error) {
	if len(alg) != 2 {
		return 0, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, errors.New("invalid algebraic square")
	}
	return int(file-'a') + int(rank-'1')*8, nil
}

// AlgebraicOf returns the two-character algebraic name of a square ("e4").
func AlgebraicOf(sq Square) string {
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareFromAlgebraic parses a two-character algebraic square name.
func SquareFromAlgebraic(alg string) (Square, error) {
	idx, err := algebraicToIndex(alg)
	if err != nil {
		return NoSquare, err
	}
	return Square(idx), nil
}
