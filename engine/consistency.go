package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// consistencyRule enforces the origins/destinies cross-invariant from the
// design notes: if s is a candidate origin of occupied square t, then t must
// be a candidate destiny of s, and vice versa. Both directions only remove
// candidates that fail the other side's current set; origins and destinies
// stay independent maps in the one fact store, never a graph link.
type consistencyRule struct{}

func (consistencyRule) Name() string { return "consistency" }

func (consistencyRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	occ := b.AllOccupancy()

	for _, t := range board.SquaresOf(occ) {
		origins := a.Origins(t)
		var keep uint64
		for _, s := range board.SquaresOf(origins) {
			destSquares, _ := a.Destinies(s)
			if destSquares&bitOf(t) != 0 {
				keep |= bitOf(s)
			}
		}
		if a.IntersectOrigins(t, keep) {
			changed = true
		}
	}

	for _, s := range board.SquaresOf(board.StartSquares) {
		destSquares, destCaptured := a.Destinies(s)
		var keep uint64
		for _, t := range board.SquaresOf(destSquares) {
			if a.Origins(t)&bitOf(s) != 0 {
				keep |= bitOf(t)
			}
		}
		if a.IntersectDestinies(s, keep, destCaptured) {
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
