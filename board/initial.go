package board

// initialBoard is the standard starting array, parsed once and kept around so the
// retrograde-analysis layer can ask "what started here" without re-parsing FEN.
var initialBoard *Board

// StartSquares is the bitboard of the 32 squares occupied in the standard starting
// array (ranks 1, 2, 7 and 8).
const StartSquares uint64 = 0xFFFF00000000FFFF

func init() {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic("board: failed to parse standard starting array: " + err.Error())
	}
	initialBoard = b
}

// InitialPieceAt returns the piece that stands on sq in the standard starting array,
// or NoPiece if sq is empty in that array.
func InitialPieceAt(sq Square) Piece { return initialBoard.PieceAt(sq) }

// InitialSquares returns the bitboard of squares occupied by (color, pt) in the
// standard starting array.
func InitialSquares(color Color, pt PieceType) uint64 {
	bb := initialBoard.Bitboards(color)
	switch pt {
	case PieceTypePawn:
		return bb.Pawns
	case PieceTypeKnight:
		return bb.Knights
	case PieceTypeBishop:
		return bb.Bishops
	case PieceTypeRook:
		return bb.Rooks
	case PieceTypeQueen:
		return bb.Queens
	case PieceTypeKing:
		return bb.Kings
	default:
		return 0
	}
}

// HomeRank returns the pawn home rank (0-based) for a color: rank 1 for White,
// rank 6 for Black.
func HomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// PromotionRank returns the rank (0-based) on which a pawn of color c promotes.
func PromotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// InitialPieceCount returns how many pieces of (color, pt) the standard starting
// array has.
func InitialPieceCount(color Color, pt PieceType) int {
	switch pt {
	case PieceTypePawn:
		return 8
	case PieceTypeKnight, PieceTypeBishop, PieceTypeRook:
		return 2
	case PieceTypeQueen, PieceTypeKing:
		return 1
	default:
		return 0
	}
}
