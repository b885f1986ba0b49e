package engine

import (
	"math/bits"
	"sherlock/analysis"
	"sherlock/board"
)

// capturesBoundRule tightens each side's total-captures interval. The
// exact count of an opponent's missing pieces (once the material
// rule has run) is exactly the number of captures this side has made, so
// lo and hi both collapse to that figure. Independently, any pawn whose
// origin file is already pinned contributes its file drift as a forced
// lower bound, which matters before the material rule has narrowed missing
// counts to their final values.
type capturesBoundRule struct{}

func (capturesBoundRule) Name() string { return "captures-bound" }

func (capturesBoundRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	for _, color := range colors {
		opponent := opposite(color)
		total := 0
		for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
			total += a.Missing(opponent, pt)
		}
		if a.TightenCaptures(color, total, total) {
			changed = true
		}

		if forced := forcedPawnFileDrift(b, a, color); forced > 0 {
			forced = Clamp(forced, 0, 16)
			if a.TightenCaptures(color, forced, 16) {
				changed = true
			}
		}
	}
	if a.IsIllegal() {
		return Illegal
	}
	if changed {
		return Changed
	}
	return Unchanged
}

func forcedPawnFileDrift(b *board.Board, a *analysis.Analysis, color board.Color) int {
	total := 0
	for _, sq := range board.SquaresOf(b.Bitboards(color).Pawns) {
		origins := a.Origins(sq) & board.InitialSquares(color, board.PieceTypePawn)
		if bits.OnesCount64(origins) == 1 {
			home := board.Square(bits.TrailingZeros64(origins))
			total += absInt(sq.File() - home.File())
		}
	}
	return total
}
