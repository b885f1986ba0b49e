package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// steadyRule grows the steady set to a fixed point. Kings and
// castling rooks are seeded by analysis.New directly from castling rights;
// this rule adds two more sound sources of steadiness:
//   - a pawn standing on its own home rank never moved, since pawns never
//     move backward;
//   - a piece standing on its own home square all of whose immediate exit
//     squares are occupied by already-steady pieces never had anywhere to
//     go, so it never moved either. Since steady pieces have occupied their
//     square since the start of the game, this reasoning composes: the set
//     keeps growing outward from the pawns and the castling seed.
//
// A declared en-passant target adds a third, narrower source: the home
// square of the pawn it pins as having just double-pushed was occupied by
// that very pawn for the whole game up to the move before this one, so it
// was never available as a transit square for anything else, even though
// it now stands empty. Apply treats it the same as an occupied,
// already-steady square when testing exits, for that reason alone.
type steadyRule struct{}

func (steadyRule) Name() string { return "steady" }

func (steadyRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	steady := a.Steady()
	blocked := steady
	if _, home, _, ok := enPassantPush(b); ok {
		blocked |= bitOf(home)
	}

	for _, sq := range board.SquaresOf(b.AllOccupancy()) {
		bit := bitOf(sq)
		if steady&bit != 0 {
			continue
		}
		p := b.PieceAt(sq)
		color, pt := p.Color(), p.Type()

		if pt == board.PieceTypePawn {
			if sq.Rank() == board.HomeRank(color) {
				if a.MarkSteady(sq) {
					changed = true
				}
			}
			continue
		}

		if board.InitialSquares(color, pt)&bit == 0 {
			continue
		}
		exits := immediateExits(pt, sq)
		if exits == 0 || exits&^blocked != 0 {
			continue
		}
		if a.MarkSteady(sq) {
			changed = true
		}
	}
	if changed {
		return Changed
	}
	return Unchanged
}

func immediateExits(pt board.PieceType, sq board.Square) uint64 {
	switch pt {
	case board.PieceTypeKnight:
		return board.KnightAttacks(sq)
	case board.PieceTypeKing:
		return board.KingAttacks(sq)
	case board.PieceTypeBishop:
		return diagonalNeighbors(sq)
	case board.PieceTypeRook:
		return orthogonalNeighbors(sq)
	case board.PieceTypeQueen:
		return diagonalNeighbors(sq) | orthogonalNeighbors(sq)
	default:
		return 0
	}
}

var diagonalSteps = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var orthogonalSteps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func diagonalNeighbors(sq board.Square) uint64 { return neighborsOf(sq, diagonalSteps) }
func orthogonalNeighbors(sq board.Square) uint64 { return neighborsOf(sq, orthogonalSteps) }

func neighborsOf(sq board.Square, steps [4][2]int) uint64 {
	var out uint64
	f, r := sq.File(), sq.Rank()
	for _, d := range steps {
		nf, nr := f+d[0], r+d[1]
		if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			out |= bitOf(board.Square(nr*8 + nf))
		}
	}
	return out
}
