package game

// Material values in centipawns. The king value is a sentinel: it appears on
// both sides of every legal position, so it cancels out of the material sum.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// MateValue is the magnitude of a forced-win score. Search strategies shrink
// it by the ply at which the mate is seen, so faster mates score strictly
// higher; no static evaluation comes anywhere near it.
const MateValue = 20000

var pieceValues = map[PieceType]int{
	Pawn:   PawnValue,
	Knight: KnightValue,
	Bishop: BishopValue,
	Rook:   RookValue,
	Queen:  QueenValue,
	King:   KingValue,
}

// Phase is the coarse game phase driving which king table applies.
type Phase int8

const (
	Middlegame Phase = iota
	Endgame
)

// PhaseOf derives the game phase from remaining material: the endgame starts
// once both queens are gone, or one queen remains with at most four other
// non-pawn pieces on the board.
func PhaseOf(pos Position) Phase {
	var queens, minorsMajors int
	for sq := Square(0); sq < NumSquares; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		switch p.Type {
		case Queen:
			queens++
		case Rook, Bishop, Knight:
			minorsMajors++
		}
	}
	if queens == 0 {
		return Endgame
	}
	if queens == 1 && minorsMajors <= 4 {
		return Endgame
	}
	return Middlegame
}

// EvaluatePosition scores a position in centipawns, positive favoring White:
// mate and draw terminals first, then material plus piece-square bonuses for
// every occupied square, with the endgame king table once the phase flips.
// It is a pure function of the position.
func EvaluatePosition(pos Position) int {
	if pos.IsCheckmate() {
		if pos.SideToMove() == White {
			return -MateValue
		}
		return MateValue
	}
	if pos.IsStalemate() || pos.IsDraw() {
		return 0
	}

	phase := PhaseOf(pos)
	score := 0
	for sq := Square(0); sq < NumSquares; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		material := pieceValues[p.Type]
		if p.Color == Black {
			material = -material
		}
		score += material + pieceSquareValue(p, sq, phase)
	}
	return score
}

// EvaluateMaterial scores the bare material balance, ignoring position and
// terminal state. Useful as a cheap evaluator and for diagnostics.
func EvaluateMaterial(pos Position) int {
	score := 0
	for sq := Square(0); sq < NumSquares; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		value := pieceValues[p.Type]
		if p.Color == Black {
			value = -value
		}
		score += value
	}
	return score
}
