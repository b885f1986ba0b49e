package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// originsRule narrows each pawn's admissible home files by the captures its
// own side can afford. A pawn now standing on file g that
// started on file f has made at least |g-f| captures along the way; every
// one of them its own side's; so a candidate home file costing more than
// the side's current captures upper bound is inadmissible.
//
// Non-pawn origins (home square, or a promoted pawn's home file) are seeded
// fully narrow by analysis.New already; this rule does not relitigate them,
// leaving that to the mobility and consistency rules.
type originsRule struct{}

func (originsRule) Name() string { return "origins" }

func (originsRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	for _, sq := range board.SquaresOf(b.AllOccupancy()) {
		p := b.PieceAt(sq)
		if p.Type() != board.PieceTypePawn {
			continue
		}
		color := p.Color()
		_, hi := a.CapturesBounds(color)

		var admissible uint64
		for _, home := range board.SquaresOf(board.InitialSquares(color, board.PieceTypePawn)) {
			if absInt(sq.File()-home.File()) <= hi {
				admissible |= bitOf(home)
			}
		}
		if a.IntersectOrigins(sq, admissible) {
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

// originExclusivityRule removes a steady square's own origin from every
// other occupied square's candidate set: a steady piece is provably its own
// original occupant, so no other piece on the board could have started
// there. This is what lets a drifted pawn's home file collapse to a
// singleton once every other file's home pawn is proven steady in place.
type originExclusivityRule struct{}

func (originExclusivityRule) Name() string { return "origin-exclusivity" }

func (originExclusivityRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	occ := b.AllOccupancy()
	for _, s := range board.SquaresOf(a.Steady()) {
		claimed := bitOf(s)
		for _, t := range board.SquaresOf(occ &^ claimed) {
			if a.Origins(t)&claimed == 0 {
				continue
			}
			if a.IntersectOrigins(t, a.Origins(t)&^claimed) {
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
