// Package analysis holds the fact store that the legality deduction engine
// refines to a fixed point. It owns no logic of its own beyond narrow,
// monotone mutators and cheap observers; rules live in package engine.
package analysis

import (
	"sherlock/board"
)

// Parity is the provable parity of a side's move count, modulo 2.
type Parity uint8

const (
	// ParityUnknown means the parity has not (yet) been proven.
	ParityUnknown Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "unknown"
	}
}

// Analysis is the mutable knowledge base about one position under retrograde
// analysis. It is owned exclusively by one legality call; concurrent analyses
// must use independent instances.
type Analysis struct {
	Board *board.Board

	// origins[sq] is, for an occupied square sq, the bitboard of start squares
	// (restricted to board.StartSquares) the piece on sq could have begun on.
	// Meaningless for empty squares.
	origins [64]uint64

	// destSquares[start] is, for a start square in the initial array, the
	// bitboard of current squares the piece could have ended up on.
	// destCaptured[start] additionally tracks whether "captured" remains a
	// live possibility for that piece.
	destSquares  [64]uint64
	destCaptured [64]bool

	// steady is the bitboard of squares holding a piece proven never to have
	// moved.
	steady uint64

	// reachable[color][pieceType][sq] over-approximates the squares a piece of
	// that color/kind, now standing on sq, could have visited during the game.
	reachable [2][7][64]uint64

	capturesLo [2]int
	capturesHi [2]int

	parity [2]Parity

	// missing[color][pieceType] is the number of pieces of that kind and color
	// that are not on the board (captured or, for pawns, promoted away).
	missing [2][7]int

	illegal       bool
	illegalReason string

	progress uint64
}

// New builds an initial, maximally loose fact store from a board snapshot.
func New(b *board.Board) *Analysis {
	a := &Analysis{Board: b}

	for sq := 0; sq < 64; sq++ {
		a.destSquares[sq] = 0
		a.destCaptured[sq] = true
	}

	occ := b.AllOccupancy()
	for _, sq := range board.SquaresOf(occ) {
		p := b.PieceAt(sq)
		color := p.Color()
		pt := p.Type()

		a.origins[sq] = candidateOrigins(color, pt, sq)
	}

	// Destinies: every start square's piece may have ended on any occupied
	// square of matching kind, or be captured.
	for _, start := range board.SquaresOf(board.StartSquares) {
		ip := board.InitialPieceAt(start)
		color := ip.Color()
		pt := ip.Type()

		a.destSquares[start] = destinyCandidates(b, color, pt, occ)
		a.destCaptured[start] = true
	}

	a.capturesLo = [2]int{0, 0}
	a.capturesHi = [2]int{15, 15}

	a.steady = seedSteady(b)
	for _, sq := range board.SquaresOf(a.steady) {
		a.pinSteadyLocked(sq)
	}

	return a
}

// candidateOrigins returns the admissible start squares (before any rule
// narrows them) for a piece of (color, pt) currently on sq.
func candidateOrigins(color board.Color, pt board.PieceType, sq board.Square) uint64 {
	if pt == board.PieceTypePawn {
		// A pawn standing anywhere may have started on any of its side's
		// eight pawn files; originsRule narrows this by capture-affordability,
		// and the origin-exclusivity rule prunes files whose home pawn is
		// already proven to be a different, steady piece.
		return board.InitialSquares(color, board.PieceTypePawn)
	}
	// Non-pawns: either the matching home squares, or (for the promotable
	// types) any pawn's home file, since the piece may be a promoted pawn.
	set := board.InitialSquares(color, pt)
	if pt != board.PieceTypeKing {
		set |= board.InitialSquares(color, board.PieceTypePawn)
	}
	return set
}

// destinyCandidates returns the admissible current squares for a piece that
// started as (color, pt), before any rule has narrowed the set: every
// occupied square holding a piece of matching color and kind, or (for pawns)
// every occupied square of matching color, since a pawn may have promoted.
func destinyCandidates(b *board.Board, color board.Color, pt board.PieceType, occ uint64) uint64 {
	var out uint64
	for _, sq := range board.SquaresOf(occ) {
		p := b.PieceAt(sq)
		if p.Color() != color {
			continue
		}
		if pt == board.PieceTypePawn {
			out |= uint64(1) << uint(sq)
			continue
		}
		if p.Type() == pt {
			out |= uint64(1) << uint(sq)
		}
	}
	return out
}

// seedSteady computes the conservative initial steady set: kings and rooks
// that still carry castling rights on their home squares. The engine's steady
// rule grows this set to a fixed point during saturation.
func seedSteady(b *board.Board) uint64 {
	var steady uint64
	cr := b.CastlingRights()

	if cr&board.CastlingWhiteK != 0 || cr&board.CastlingWhiteQ != 0 {
		if b.PieceAt(4) == board.WhiteKing {
			steady |= uint64(1) << 4
		}
	}
	if cr&board.CastlingWhiteK != 0 && b.PieceAt(7) == board.WhiteRook {
		steady |= uint64(1) << 7
	}
	if cr&board.CastlingWhiteQ != 0 && b.PieceAt(0) == board.WhiteRook {
		steady |= uint64(1) << 0
	}
	if cr&board.CastlingBlackK != 0 || cr&board.CastlingBlackQ != 0 {
		if b.PieceAt(60) == board.BlackKing {
			steady |= uint64(1) << 60
		}
	}
	if cr&board.CastlingBlackK != 0 && b.PieceAt(63) == board.BlackRook {
		steady |= uint64(1) << 63
	}
	if cr&board.CastlingBlackQ != 0 && b.PieceAt(56) == board.BlackRook {
		steady |= uint64(1) << 56
	}
	return steady
}

func (a *Analysis) bump() { a.progress++ }

// Progress returns the monotonic tick, incremented whenever any fact is
// narrowed.
func (a *Analysis) Progress() uint64 { return a.progress }

// IsIllegal reports whether a contradiction has been derived.
func (a *Analysis) IsIllegal() bool { return a.illegal }

// IllegalReason returns the debug tag of the rule that raised the
// contradiction, or "" if none has. Not part of any user-visible contract;
// exposed for tests and CLI verbosity only.
func (a *Analysis) IllegalReason() string { return a.illegalReason }

// MarkIllegal sets the sticky illegal flag. Idempotent: the first reason wins.
func (a *Analysis) MarkIllegal(reason string) {
	if a.illegal {
		return
	}
	a.illegal = true
	a.illegalReason = reason
	a.bump()
}

// Origins returns the current candidate start squares for an occupied square.
func (a *Analysis) Origins(sq board.Square) uint64 { return a.origins[sq] }

// IntersectOrigins narrows origins(sq) to its intersection with set. Reports
// whether the set changed. Marks illegal if the result is empty.
func (a *Analysis) IntersectOrigins(sq board.Square, set uint64) bool {
	if a.illegal {
		return false
	}
	next := a.origins[sq] & set
	if next == a.origins[sq] {
		return false
	}
	a.origins[sq] = next
	if next == 0 {
		a.MarkIllegal("origins-empty")
		return true
	}
	a.bump()
	return true
}

// Destinies returns the current candidate current-squares and whether
// "captured" remains possible for a start square.
func (a *Analysis) Destinies(start board.Square) (squares uint64, capturedPossible bool) {
	return a.destSquares[start], a.destCaptured[start]
}

// IntersectDestinies narrows destinies(start) to squares ∩ set, and ANDs the
// captured-possible flag with capturedPossible. Marks illegal if both the
// square set and captured-possible become empty/false.
func (a *Analysis) IntersectDestinies(start board.Square, set uint64, capturedPossible bool) bool {
	if a.illegal {
		return false
	}
	nextSquares := a.destSquares[start] & set
	nextCaptured := a.destCaptured[start] && capturedPossible
	if nextSquares == a.destSquares[start] && nextCaptured == a.destCaptured[start] {
		return false
	}
	a.destSquares[start] = nextSquares
	a.destCaptured[start] = nextCaptured
	if nextSquares == 0 && !nextCaptured {
		a.MarkIllegal("destinies-empty")
		return true
	}
	a.bump()
	return true
}

// Steady returns the bitboard of squares proven never to have moved.
func (a *Analysis) Steady() uint64 { return a.steady }

// MarkSteady adds sq to the steady set and pins its origin/destiny to
// singletons. Returns whether the set changed.
func (a *Analysis) MarkSteady(sq board.Square) bool {
	if a.illegal {
		return false
	}
	bit := uint64(1) << uint(sq)
	if a.steady&bit != 0 {
		return false
	}
	a.steady |= bit
	a.bump()
	a.pinSteadyLocked(sq)
	return true
}

// pinSteadyLocked intersects a steady square's origin/destiny down to the
// singleton implied by its own identity, without double-bumping progress
// beyond what the intersect calls already report.
func (a *Analysis) pinSteadyLocked(sq board.Square) {
	bit := uint64(1) << uint(sq)
	a.IntersectOrigins(sq, bit)
	a.IntersectDestinies(sq, bit, false)
}

// CapturesBounds returns the current [lo, hi] bound on the number of captures
// made by color.
func (a *Analysis) CapturesBounds(color board.Color) (lo, hi int) {
	return a.capturesLo[color], a.capturesHi[color]
}

// TightenCaptures intersects [lo, hi] with the current bound for color. Marks
// illegal if the interval becomes empty.
func (a *Analysis) TightenCaptures(color board.Color, lo, hi int) bool {
	if a.illegal {
		return false
	}
	newLo := maxInt(a.capturesLo[color], lo)
	newHi := minInt(a.capturesHi[color], hi)
	if newLo == a.capturesLo[color] && newHi == a.capturesHi[color] {
		return false
	}
	a.capturesLo[color] = newLo
	a.capturesHi[color] = newHi
	if newLo > newHi {
		a.MarkIllegal("captures-bound-empty")
		return true
	}
	a.bump()
	return true
}

// ParityOf returns the provable parity of color's move count, or
// ParityUnknown.
func (a *Analysis) ParityOf(color board.Color) Parity { return a.parity[color] }

// SetParity records color's move-count parity. Marks illegal if a different
// parity was already recorded.
func (a *Analysis) SetParity(color board.Color, bit Parity) bool {
	if a.illegal || bit == ParityUnknown {
		return false
	}
	if a.parity[color] == bit {
		return false
	}
	if a.parity[color] != ParityUnknown {
		a.MarkIllegal("parity-conflict")
		return true
	}
	a.parity[color] = bit
	a.bump()
	return true
}

// Missing returns the number of (color, pt) pieces not on the board.
func (a *Analysis) Missing(color board.Color, pt board.PieceType) int {
	return a.missing[color][pt]
}

// SetMissing records the number of missing (color, pt) pieces. The count is
// derived deterministically from the static board by the material rule, so
// this is really "set once"; it still refuses to move backwards and bumps
// progress like any other narrowing mutator.
func (a *Analysis) SetMissing(color board.Color, pt board.PieceType, n int) bool {
	if a.illegal {
		return false
	}
	if n < a.missing[color][pt] {
		return false
	}
	if n == a.missing[color][pt] {
		return false
	}
	if n > board.InitialPieceCount(color, pt) {
		a.MarkIllegal("missing-overflow")
		return true
	}
	a.missing[color][pt] = n
	a.bump()
	return true
}

// Reachable returns the over-approximated mobility bitboard for a piece of
// (color, pt) currently standing on sq.
func (a *Analysis) Reachable(color board.Color, pt board.PieceType, sq board.Square) uint64 {
	return a.reachable[color][pt][sq]
}

// IntersectReachable narrows the mobility bitboard for (color, pt, sq).
func (a *Analysis) IntersectReachable(color board.Color, pt board.PieceType, sq board.Square, set uint64) bool {
	if a.illegal {
		return false
	}
	cur := a.reachable[color][pt][sq]
	next := cur & set
	if next == cur {
		return false
	}
	a.reachable[color][pt][sq] = next
	a.bump()
	return true
}

// SeedReachable sets the initial mobility bitboard for (color, pt, sq) if it
// has not been seeded yet (zero value means "unseeded", since an empty
// mobility graph after seeding would already have been caught as illegal).
func (a *Analysis) SeedReachable(color board.Color, pt board.PieceType, sq board.Square, set uint64) {
	if a.reachable[color][pt][sq] == 0 {
		a.reachable[color][pt][sq] = set
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
