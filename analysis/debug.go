package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"sherlock/board"
)

// DebugString dumps the fact store's per-square origin/destiny sets, the
// steady set, and the capture/parity/missing summaries. It is not part of
// the engine's user-visible contract; only the CLI's verbose
// flag and tests read it, so formatting stability is not promised.
func (a *Analysis) DebugString() string {
	var sb strings.Builder
	if a.illegal {
		fmt.Fprintf(&sb, "illegal: %s\n", a.illegalReason)
	} else {
		fmt.Fprintf(&sb, "legal (progress=%d)\n", a.progress)
	}

	fmt.Fprintf(&sb, "steady: %s\n", squareListString(a.steady))

	for _, sq := range board.SquaresOf(a.Board.AllOccupancy()) {
		fmt.Fprintf(&sb, "origins(%s) = %s\n", board.AlgebraicOf(sq), squareListString(a.origins[sq]))
	}
	for _, start := range board.SquaresOf(board.StartSquares) {
		squares, captured := a.Destinies(start)
		fmt.Fprintf(&sb, "destinies(%s) = %s captured=%t\n", board.AlgebraicOf(start), squareListString(squares), captured)
	}

	for _, c := range []board.Color{board.White, board.Black} {
		lo, hi := a.CapturesBounds(c)
		fmt.Fprintf(&sb, "captures[%s] = [%d,%d] parity=%s\n", colorName(c), lo, hi, a.ParityOf(c))

		missing := make(map[board.PieceType]int)
		for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
			if n := a.Missing(c, pt); n > 0 {
				missing[pt] = n
			}
		}
		kinds := maps.Keys(missing)
		slices.Sort(kinds)
		for _, pt := range kinds {
			fmt.Fprintf(&sb, "  missing %s: %d\n", pieceTypeName(pt), missing[pt])
		}
	}

	return sb.String()
}

func squareListString(mask uint64) string {
	if mask == 0 {
		return "{}"
	}
	squares := board.SquaresOf(mask)
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = board.AlgebraicOf(sq)
	}
	return "{" + strings.Join(names, ",") + "}"
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func pieceTypeName(pt board.PieceType) string {
	switch pt {
	case board.PieceTypePawn:
		return "pawn"
	case board.PieceTypeKnight:
		return "knight"
	case board.PieceTypeBishop:
		return "bishop"
	case board.PieceTypeRook:
		return "rook"
	case board.PieceTypeQueen:
		return "queen"
	case board.PieceTypeKing:
		return "king"
	default:
		return "?"
	}
}
