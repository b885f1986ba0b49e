package engine

import (
	"sherlock/analysis"
	"sherlock/board"
)

// castlingRightsRule enforces that a declared castling right requires
// its king and rook to be on their home squares, and marks both steady.
type castlingRightsRule struct{}

func (castlingRightsRule) Name() string { return "castling-rights" }

var castlingChecks = [4]struct {
	flag              board.CastlingRights
	kingSq, rookSq    board.Square
	kingPiece, rookPiece board.Piece
}{
	{board.CastlingWhiteK, 4, 7, board.WhiteKing, board.WhiteRook},
	{board.CastlingWhiteQ, 4, 0, board.WhiteKing, board.WhiteRook},
	{board.CastlingBlackK, 60, 63, board.BlackKing, board.BlackRook},
	{board.CastlingBlackQ, 60, 56, board.BlackKing, board.BlackRook},
}

func (castlingRightsRule) Apply(b *board.Board, a *analysis.Analysis) Verdict {
	changed := false
	cr := b.CastlingRights()

	for _, c := range castlingChecks {
		if cr&c.flag == 0 {
			continue
		}
		if b.PieceAt(c.kingSq) != c.kingPiece || b.PieceAt(c.rookSq) != c.rookPiece {
			a.MarkIllegal("castling-rights-displaced")
			return Illegal
		}
		if a.MarkSteady(c.kingSq) {
			changed = true
		}
		if a.MarkSteady(c.rookSq) {
			changed = true
		}
	}
	if changed {
		return Changed
	}
	return Unchanged
}
