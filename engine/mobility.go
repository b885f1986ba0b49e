package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// mobilityRule over-approximates, for each piece still on the board, the
// squares it could ever have visited by flood-filling outward from its
// current square using that piece kind's movement, treating any square a
// steady piece occupies as an impassable wall; steady pieces have occupied
// their square since the start of the game, so nothing has ever slipped
// through or landed on them. If a piece's proven origin
// candidates lie entirely outside this graph, the position is illegal.
//
// Pawns are excluded: their file reachability is already the job of
// originsRule/destiniesRule, and a flood fill that doesn't account for
// diagonal captures would only narrow unsoundly.
type mobilityRule struct{}

func (mobilityRule) Name() string { return "mobility" }

func (mobilityRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	blockers := a.Steady()

	for _, sq := range board.SquaresOf(b.AllOccupancy()) {
		p := b.PieceAt(sq)
		pt := p.Type()
		if pt == board.PieceTypePawn {
			continue
		}
		color := p.Color()

		set := reachableFrom(pt, sq, blockers)
		a.SeedReachable(color, pt, sq, set)
		if a.IntersectReachable(color, pt, sq, set) {
			changed = true
		}
		if a.IntersectOrigins(sq, a.Reachable(color, pt, sq)) {
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

func reachableFrom(pt board.PieceType, sq board.Square, blockers uint64) uint64 {
	visited := bitOf(sq)
	frontier := []board.Square{sq}

	for len(frontier) > 0 {
		var next []board.Square
		for _, cur := range frontier {
			var targets uint64
			switch pt {
			case board.PieceTypeKnight:
				targets = board.KnightAttacks(cur)
			case board.PieceTypeKing:
				targets = board.KingAttacks(cur)
			case board.PieceTypeRook:
				targets = board.RookAttacks(cur, blockers)
			case board.PieceTypeBishop:
				targets = board.BishopAttacks(cur, blockers)
			case board.PieceTypeQueen:
				targets = board.QueenAttacks(cur, blockers)
			}
			targets &^= blockers
			targets &^= visited
			for _, t := range board.SquaresOf(targets) {
				visited |= bitOf(t)
				next = append(next, t)
			}
		}
		frontier = next
	}
	return visited
}
