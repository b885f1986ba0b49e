package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// materialRule checks that no side's piece counts exceed what the starting
// army plus pawn promotion could ever produce, and records the missing count
// per (color, kind).
type materialRule struct{}

func (materialRule) Name() string { return "material" }

func (materialRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	for _, color := range colors {
		counts := countByType(b, color)

		if counts[board.PieceTypeKing] != 1 {
			a.MarkIllegal("material-king-count")
			return Illegal
		}

		pawns := counts[board.PieceTypePawn]
		missingPawns := 8 - pawns
		if missingPawns < 0 {
			a.MarkIllegal("material-too-many-pawns")
			return Illegal
		}

		promoted := 0
		for _, pt := range promotableKinds {
			onBoard := counts[pt]
			if initial := board.InitialPieceCount(color, pt); onBoard > initial {
				promoted += onBoard - initial
			}
		}
		if promoted > missingPawns {
			a.MarkIllegal("material-promotion-overflow")
			return Illegal
		}

		if a.SetMissing(color, board.PieceTypePawn, missingPawns-promoted) {
			changed = true
		}
		for _, pt := range promotableKinds {
			missing := board.InitialPieceCount(color, pt) - counts[pt]
			if missing < 0 {
				missing = 0
			}
			if a.SetMissing(color, pt, missing) {
				changed = true
			}
		}
		if a.SetMissing(color, board.PieceTypeKing, 0) {
			changed = true
		}
	}
	if changed {
		return Changed
	}
	return Unchanged
}

var promotableKinds = [4]board.PieceType{
	board.PieceTypeKnight, board.PieceTypeBishop, board.PieceTypeRook, board.PieceTypeQueen,
}

func countByType(b *board.Board, color board.Color) [7]int {
	var counts [7]int
	for _, sq := range board.SquaresOf(b.ColorOccupancy(color)) {
		counts[b.PieceAt(sq).Type()]++
	}
	return counts
}
