package game

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

// ErrNoMoveToUndo reports an Undo with no matching Apply. The make/unmake
// contract is broken at that point, so callers must abort the search call
// rather than keep evaluating a corrupted position.
var ErrNoMoveToUndo = errors.New("undo without a matching apply")

// ErrForeignMove reports an Apply with a move that did not come from this
// board's LegalMoves.
var ErrForeignMove = errors.New("move does not belong to this board")

// Board adapts the notnil/chess rules library to the Position contract. The
// library produces a fresh immutable position per move, so make/unmake is a
// stack of positions: Apply pushes, Undo pops.
//
// A Board is not safe for concurrent use; concurrent searches each need their
// own Board.
type Board struct {
	stack []*chess.Position
}

// NewBoard returns a board at the standard starting position.
func NewBoard() *Board {
	return &Board{stack: []*chess.Position{chess.NewGame().Position()}}
}

// NewBoardFromFEN returns a board at the position described by fen.
func NewBoardFromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse FEN %q: %w", fen, err)
	}
	return &Board{stack: []*chess.Position{chess.NewGame(opt).Position()}}, nil
}

func (b *Board) position() *chess.Position {
	return b.stack[len(b.stack)-1]
}

// FEN returns the current position in Forsyth-Edwards notation.
func (b *Board) FEN() string {
	return b.position().String()
}

func (b *Board) SideToMove() Color {
	if b.position().Turn() == chess.White {
		return White
	}
	return Black
}

func (b *Board) LegalMoves() []Move {
	valid := b.position().ValidMoves()
	moves := make([]Move, len(valid))
	for i, mv := range valid {
		moves[i] = boardMove{mv: mv}
	}
	return moves
}

func (b *Board) Apply(m Move) error {
	bm, ok := m.(boardMove)
	if !ok {
		return fmt.Errorf("apply %v: %w", m, ErrForeignMove)
	}
	b.stack = append(b.stack, b.position().Update(bm.mv))
	return nil
}

func (b *Board) Undo() error {
	if len(b.stack) == 1 {
		return ErrNoMoveToUndo
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *Board) IsCheckmate() bool {
	return b.position().Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.position().Status() == chess.Stalemate
}

// IsDraw reports draws by insufficient mating material. Repetition and the
// fifty-move rule depend on game history the board does not keep; the caller
// owns those.
func (b *Board) IsDraw() bool {
	var pawns, majors, minors int
	board := b.position().Board()
	for sq := 0; sq < NumSquares; sq++ {
		switch board.Piece(chess.Square(sq)).Type() {
		case chess.Pawn:
			pawns++
		case chess.Rook, chess.Queen:
			majors++
		case chess.Knight, chess.Bishop:
			minors++
		}
	}
	return pawns == 0 && majors == 0 && minors <= 1
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.position().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	return Piece{Type: pieceType(p.Type()), Color: pieceColor(p.Color())}, true
}

// ApplyUCI applies the move written in UCI notation, for harnesses that feed
// recorded move lists. The move must be legal in the current position.
func (b *Board) ApplyUCI(uci string) error {
	for _, mv := range b.position().ValidMoves() {
		if mv.String() == uci {
			return b.Apply(boardMove{mv: mv})
		}
	}
	return fmt.Errorf("move %q is not legal in %s", uci, b.FEN())
}

type boardMove struct {
	mv *chess.Move
}

func (m boardMove) String() string { return m.mv.String() }

func (m boardMove) IsCapture() bool {
	return m.mv.HasTag(chess.Capture) || m.mv.HasTag(chess.EnPassant)
}

func (m boardMove) IsCheck() bool { return m.mv.HasTag(chess.Check) }

func pieceType(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}

func pieceColor(c chess.Color) Color {
	if c == chess.White {
		return White
	}
	return Black
}
