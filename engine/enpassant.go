package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// enPassantRule enforces that a declared en-passant target pins down
// the double-pushing pawn's identity, color, and exact home square, and
// requires the home square to now be empty and the side to move to be the
// one that did not just push.
type enPassantRule struct{}

func (enPassantRule) Name() string { return "en-passant" }

func (enPassantRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	mover, homeSq, pushedSq, ok := enPassantPush(b)
	if !ok {
		return Unchanged
	}

	p := b.PieceAt(pushedSq)
	if p.Type() != board.PieceTypePawn || p.Color() != mover {
		a.MarkIllegal("en-passant-no-pawn")
		return Illegal
	}
	if b.PieceAt(homeSq) != board.NoPiece {
		a.MarkIllegal("en-passant-home-occupied")
		return Illegal
	}
	if b.SideToMove() == mover {
		a.MarkIllegal("en-passant-side-to-move")
		return Illegal
	}

	changed := a.IntersectOrigins(pushedSq, bitOf(homeSq))
	if a.IsIllegal() {
		return Illegal
	}
	if changed {
		return Changed
	}
	return Unchanged
}

// enPassantPush decodes a declared en-passant target into the pawn that
// just double-pushed: its color, home square, and current square. A
// declared target is itself the premise that the previous half-move was
// that double push, so home was occupied continuously from the start of
// the game through the move before this one.
func enPassantPush(b *board.Board) (mover board.Color, homeSq, pushedSq board.Square, ok bool) {
	t := b.EnPassantSquare()
	if t == board.NoSquare {
		return 0, 0, 0, false
	}
	mover = opposite(b.SideToMove())
	if mover == board.White {
		pushedSq, homeSq = board.Square(int(t)+8), board.Square(int(t)-8)
	} else {
		pushedSq, homeSq = board.Square(int(t)-8), board.Square(int(t)+8)
	}
	return mover, homeSq, pushedSq, true
}
