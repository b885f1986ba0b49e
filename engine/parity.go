package engine

import (
	"math/bits"

	"sherlock/analysis"
	"sherlock/board"
)

// parityRule derives each side's move-count parity from two sound sources,
// then cross-checks the two parities against whose turn it is: White to
// move iff the two parities match (both have played the same number of
// half-moves of their own), Black to move iff White has played exactly one
// more.
//
// The first source is trivial: a side all of whose pieces are steady has
// made zero moves, hence even parity. The second fires only once the
// origin/destiny analysis has pinned every non-pawn, non-knight piece of
// that color as steady (so every move that side ever made was a pawn move
// or a knight move): pawn moves contribute their rank progression from a
// pinned home square, and knight moves contribute the parity implied by
// comparing a living knight's origin-square colour to its current one,
// plus one known move per knight that is missing rather than on the board.
type parityRule struct{}

func (parityRule) Name() string { return "parity" }

func (parityRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	for _, color := range colors {
		if a.ParityOf(color) != analysis.ParityUnknown {
			continue
		}
		if allSteady(b, a, color) {
			if a.SetParity(color, analysis.ParityEven) {
				changed = true
			}
			continue
		}
		if bit, ok := pawnKnightParity(b, a, color); ok {
			if a.SetParity(color, bit) {
				changed = true
			}
		}
	}
	if a.IsIllegal() {
		return Illegal
	}

	wp, bp := a.ParityOf(board.White), a.ParityOf(board.Black)
	if wp != analysis.ParityUnknown && bp != analysis.ParityUnknown {
		parityMatches := wp == bp
		whiteToMove := b.SideToMove() == board.White
		if parityMatches != whiteToMove {
			a.MarkIllegal("parity-side-to-move-conflict")
			return Illegal
		}
	}

	if changed {
		return Changed
	}
	return Unchanged
}

func allSteady(b *board.Board, a *analysis.Analysis, color board.Color) bool {
	occ := b.ColorOccupancy(color)
	return occ != 0 && occ&^a.Steady() == 0
}

// pawnKnightParity derives color's move-count parity under the gate "every
// move this side ever made was a pawn move or a knight move", returning
// ParityUnknown/false if the gate or either contribution is not yet pinned
// down.
func pawnKnightParity(b *board.Board, a *analysis.Analysis, color board.Color) (analysis.Parity, bool) {
	if !onlyPawnsAndKnightsEverMoved(b, a, color) {
		return analysis.ParityUnknown, false
	}
	pawnMoves, ok := pawnParityMoves(b, a, color)
	if !ok {
		return analysis.ParityUnknown, false
	}
	knightMoves, ok := knightParityMoves(b, a, color)
	if !ok {
		return analysis.ParityUnknown, false
	}
	if (pawnMoves+knightMoves)%2 == 0 {
		return analysis.ParityEven, true
	}
	return analysis.ParityOdd, true
}

// onlyPawnsAndKnightsEverMoved reports whether color's bishops, rooks,
// queen and king are all still on the board and steady: if any of them is
// missing, it could have moved before being captured, and the pawn/knight
// parity sum below would no longer account for every half-move this side
// played.
func onlyPawnsAndKnightsEverMoved(b *board.Board, a *analysis.Analysis, color board.Color) bool {
	for _, pt := range []board.PieceType{board.PieceTypeBishop, board.PieceTypeRook, board.PieceTypeQueen} {
		if a.Missing(color, pt) != 0 {
			return false
		}
	}
	bb := b.Bitboards(color)
	nonPawnKnight := bb.All &^ (bb.Pawns | bb.Knights)
	return nonPawnKnight&^a.Steady() == 0
}

// pawnParityMoves sums, for every one of color's pawns still on the board,
// the exact number of moves that pawn has made. A pawn on its pinned home
// square's file that has advanced by the same number of ranks as files
// (or by at most one rank) has an unambiguous move count: every pawn move
// advances exactly one rank, except a single possible opening double push,
// which is ruled out whenever the rank advance could not also cover the
// file drift. The en-passant rule's forced double-push is the one case
// where a pawn's rank advance legitimately outruns this count by one; it
// is accounted for directly from the board rather than from the generic
// formula, since the en-passant target proves the double push happened.
func pawnParityMoves(b *board.Board, a *analysis.Analysis, color board.Color) (int, bool) {
	var epPushed board.Square = board.NoSquare
	if mover, _, pushed, ok := enPassantPush(b); ok && mover == color {
		epPushed = pushed
	}
	home := board.HomeRank(color)
	total := 0
	for _, sq := range board.SquaresOf(b.Bitboards(color).Pawns) {
		if sq == epPushed {
			total++
			continue
		}
		origins := a.Origins(sq) & board.InitialSquares(color, board.PieceTypePawn)
		if bits.OnesCount64(origins) != 1 {
			return 0, false
		}
		homeSq := board.Square(bits.TrailingZeros64(origins))
		rankDist := absInt(sq.Rank() - home)
		fileDist := absInt(sq.File() - homeSq.File())
		if rankDist > 1 && rankDist != fileDist {
			return 0, false
		}
		total += rankDist
	}
	return total, true
}

// knightParityMoves sums, for every one of color's knights still on the
// board, the move-count parity implied by comparing its pinned origin
// square's colour to its current square's colour (a knight move always
// changes square colour, so an odd move count is the only way to end on
// the opposite colour from the start), plus one known move for every
// knight of that color that is missing from the board entirely. When as many
// knights stand on the board as started and none can be a promoted pawn,
// their origins are the home squares in some order, so their combined parity
// is known without pinning which knight came from which home square.
func knightParityMoves(b *board.Board, a *analysis.Analysis, color board.Color) (int, bool) {
	knights := board.SquaresOf(b.Bitboards(color).Knights)
	homes := board.InitialSquares(color, board.PieceTypeKnight)
	if len(knights) == bits.OnesCount64(homes) {
		total, allHome := 0, true
		for i, sq := range knights {
			allHome = allHome && a.Origins(sq)&^homes == 0
			total += squareColor(sq) + squareColor(board.SquaresOf(homes)[i])
		}
		if allHome {
			return total, true
		}
	}
	total := a.Missing(color, board.PieceTypeKnight)
	for _, sq := range board.SquaresOf(b.Bitboards(color).Knights) {
		origins := a.Origins(sq)
		knightOrigins := origins & board.InitialSquares(color, board.PieceTypeKnight)
		if origins != knightOrigins || bits.OnesCount64(knightOrigins) != 1 {
			// Promotion is still a live possibility, or the origin square
			// isn't pinned yet: this knight's own parity isn't provable.
			return 0, false
		}
		homeSq := board.Square(bits.TrailingZeros64(knightOrigins))
		if squareColor(sq) != squareColor(homeSq) {
			total++
		}
	}
	return total, true
}

func squareColor(sq board.Square) int {
	return (sq.File() + sq.Rank()) % 2
}
