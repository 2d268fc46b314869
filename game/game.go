package game

// Color identifies a side.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType enumerates the chess piece kinds.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a piece kind together with the side that owns it.
type Piece struct {
	Type  PieceType
	Color Color
}

// Square indexes the board from A1=0 to H8=63, file-major within a rank.
type Square int8

const NumSquares = 64

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

// Move is an opaque legal transition between two positions. Moves are produced
// only by a Position's LegalMoves; the search never constructs one itself.
type Move interface {
	// String returns the move in UCI notation (e.g. "e2e4", "e7e8q").
	String() string
	IsCapture() bool
	IsCheck() bool
}

// Position is the rules-oracle contract the search core operates against.
// Apply and Undo must be perfectly paired: every Apply is reverted by exactly
// one Undo, restoring all state including side to move and castling rights.
type Position interface {
	SideToMove() Color
	// LegalMoves enumerates all legal moves, possibly empty. Enumeration order
	// is stable for an unchanged position.
	LegalMoves() []Move
	Apply(Move) error
	Undo() error
	IsCheckmate() bool
	IsStalemate() bool
	// IsDraw reports a draw by rule other than stalemate (insufficient material).
	IsDraw() bool
	PieceAt(Square) (Piece, bool)
}

// Evaluate scores a position in centipawns, positive favoring White. All
// search strategies interpret scores under this absolute convention.
type Evaluate func(Position) int
