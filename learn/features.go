// Package learn provides a trainable neural evaluator: board positions are
// encoded as piece planes, a small regression network predicts a value in
// [-1, 1] from White's perspective, and self-play games supply the training
// signal.
package learn

import "gambit/game"

// FeatureSize is 12 one-hot piece planes of 64 squares plus a side-to-move
// flag.
const FeatureSize = 12*game.NumSquares + 1

// Features encodes a position for the value network.
func Features(pos game.Position) []float64 {
	features := make([]float64, FeatureSize)
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		features[plane(p)*game.NumSquares+int(sq)] = 1
	}
	if pos.SideToMove() == game.White {
		features[FeatureSize-1] = 1
	}
	return features
}

func plane(p game.Piece) int {
	idx := int(p.Type - game.Pawn)
	if p.Color == game.Black {
		idx += 6
	}
	return idx
}
