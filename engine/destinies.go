package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// destiniesRule narrows each initial pawn's possible current squares by the
// same captures-affordability argument as originsRule, symmetric across the
// origin/destiny divide. Non-pawn destinies are already fully
// narrow from analysis.New (every occupied square of matching kind/color);
// consistencyRule is what further tightens them against proven origins.
type destiniesRule struct{}

func (destiniesRule) Name() string { return "destinies" }

func (destiniesRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	occ := b.AllOccupancy()

	for _, start := range board.SquaresOf(board.StartSquares) {
		ip := board.InitialPieceAt(start)
		if ip.Type() != board.PieceTypePawn {
			continue
		}
		color := ip.Color()
		_, hi := a.CapturesBounds(color)
		_, capturedOK := a.Destinies(start)

		var admissible uint64
		for _, sq := range board.SquaresOf(occ) {
			p := b.PieceAt(sq)
			if p.Color() != color {
				continue
			}
			if p.Type() != board.PieceTypePawn {
				// Already promoted: its file is no longer bounded by the
				// pawn's own capture-affordability argument.
				admissible |= bitOf(sq)
				continue
			}
			if absInt(sq.File()-start.File()) <= hi {
				admissible |= bitOf(sq)
			}
		}
		if a.IntersectDestinies(start, admissible, capturedOK) {
			changed = true
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
