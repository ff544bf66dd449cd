package zertz

// Position is where a ball currently is: exactly one of InPile or OnBoard.
// The interface is sealed; no other implementations exist.
type Position interface {
	isPosition()
}

// InPile places a ball in a pile.
type InPile struct {
	Pile PileID
}

// OnBoard places a ball on a board cell.
type OnBoard struct {
	At QR
}

func (InPile) isPosition()  {}
func (OnBoard) isPosition() {}

// Ball is a marble with a fixed identity and color.
// Only its position changes over the course of a game.
type Ball struct {
	id    BallID
	color Color
	pos   Position
}

func newBall(id BallID, color Color, pos Position) Ball {
	return Ball{id: id, color: color, pos: pos}
}

// ID returns the ball identifier.
func (b Ball) ID() BallID {
	return b.id
}

// Color returns the ball color.
func (b Ball) Color() Color {
	return b.color
}

// Position returns the tagged position of the ball.
func (b Ball) Position() Position {
	return b.pos
}

// OnBoard returns the ball's cell and true if the ball is on the board.
func (b Ball) OnBoard() (QR, bool) {
	if p, ok := b.pos.(OnBoard); ok {
		return p.At, true
	}
	return QR{}, false
}

// Pile returns the ball's pile and true if the ball is in a pile.
func (b Ball) Pile() (PileID, bool) {
	if p, ok := b.pos.(InPile); ok {
		return p.Pile, true
	}
	return 0, false
}
