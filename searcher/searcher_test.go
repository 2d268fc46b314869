package searcher

import (
	"fmt"

	"gambit/game"
)

// The stub oracle builds a hand-written game tree so tests control every
// branch and leaf score exactly. Stub positions implement the same
// make/unmake stack discipline as the real board.

type stubMove struct {
	id      string
	capture bool
	check   bool
}

func (m stubMove) String() string  { return m.id }
func (m stubMove) IsCapture() bool { return m.capture }
func (m stubMove) IsCheck() bool   { return m.check }

type stubNode struct {
	side      game.Color
	score     int
	checkmate bool
	stalemate bool
	moves     []stubMove
	children  map[string]*stubNode
}

// leaf is a node with no moves and a fixed static score.
func leaf(side game.Color, score int) *stubNode {
	return &stubNode{side: side, score: score}
}

// mate is a checkmate node: side to move has lost.
func mate(side game.Color) *stubNode {
	return &stubNode{side: side, checkmate: true}
}

type child struct {
	move stubMove
	node *stubNode
}

func mv(id string) child { return child{move: stubMove{id: id}} }

func (c child) to(node *stubNode) child { c.node = node; return c }

// branch is an internal node whose moves are enumerated in argument order.
func branch(side game.Color, children ...child) *stubNode {
	n := &stubNode{side: side, children: make(map[string]*stubNode, len(children))}
	for _, c := range children {
		n.moves = append(n.moves, c.move)
		n.children[c.move.id] = c.node
	}
	return n
}

type stubPosition struct {
	stack []*stubNode
}

func newStubPosition(root *stubNode) *stubPosition {
	return &stubPosition{stack: []*stubNode{root}}
}

func (p *stubPosition) current() *stubNode { return p.stack[len(p.stack)-1] }

func (p *stubPosition) SideToMove() game.Color { return p.current().side }

func (p *stubPosition) LegalMoves() []game.Move {
	n := p.current()
	moves := make([]game.Move, len(n.moves))
	for i, m := range n.moves {
		moves[i] = m
	}
	return moves
}

func (p *stubPosition) Apply(m game.Move) error {
	node, ok := p.current().children[m.String()]
	if !ok {
		return fmt.Errorf("stub: unknown move %s", m)
	}
	p.stack = append(p.stack, node)
	return nil
}

func (p *stubPosition) Undo() error {
	if len(p.stack) == 1 {
		return game.ErrNoMoveToUndo
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *stubPosition) IsCheckmate() bool { return p.current().checkmate }
func (p *stubPosition) IsStalemate() bool { return p.current().stalemate }
func (p *stubPosition) IsDraw() bool      { return false }

func (p *stubPosition) PieceAt(game.Square) (game.Piece, bool) {
	return game.Piece{}, false
}

// depth reports the make/unmake stack depth, for round-trip assertions.
func (p *stubPosition) depth() int { return len(p.stack) }

func stubEvaluate(pos game.Position) int {
	return pos.(*stubPosition).current().score
}

// trappedTree has a cheap first move that completes before any cancellation
// poll and a second move whose refutation sits behind thousands of siblings.
// A cancelled search sees a truncated, inflated score for the second move: the
// full search scores "trap" at -1000, the truncated one at 1000.
func trappedTree() *stubNode {
	kids := make([]child, 0, 3000)
	for i := 0; i < 2999; i++ {
		kids = append(kids, mv(fmt.Sprintf("t%d", i)).to(leaf(game.White, 1000)))
	}
	kids = append(kids, mv("refute").to(leaf(game.White, -1000)))
	return branch(game.White,
		mv("good").to(leaf(game.Black, 100)),
		mv("trap").to(branch(game.Black, kids...)),
	)
}
