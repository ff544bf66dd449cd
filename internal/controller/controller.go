// Package controller turns pairs of clicks on board objects into engine commands.
// It holds the pending selection; all game rules stay in the engine.
package controller

import "github.com/vovakirdan/zertz/internal/zertz"

// Kind is the type of object a click landed on.
type Kind int

const (
	KindBall Kind = iota
	KindPile
	KindCell
	KindUndo
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "Ball"
	case KindPile:
		return "Pile"
	case KindCell:
		return "Cell"
	case KindUndo:
		return "Undo"
	default:
		return "Unknown"
	}
}

// Target is a clickable object. Only the field matching Kind is meaningful.
type Target struct {
	Kind Kind
	Ball zertz.BallID
	Pile zertz.PileID
	Cell zertz.QR
}

// BallTarget, PileTarget, CellTarget and UndoTarget build targets.
func BallTarget(id zertz.BallID) Target { return Target{Kind: KindBall, Ball: id} }
func PileTarget(id zertz.PileID) Target { return Target{Kind: KindPile, Pile: id} }
func CellTarget(at zertz.QR) Target     { return Target{Kind: KindCell, Cell: at} }
func UndoTarget() Target                { return Target{Kind: KindUndo} }

// Result is the outcome of a click.
type Result int

const (
	// Selected means the click was stored as the source of a pending action.
	Selected Result = iota
	// Success means a command was applied.
	Success
	// Fail means the action was not valid or the engine rejected it.
	Fail
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case Selected:
		return "Selected"
	case Success:
		return "Success"
	case Fail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// Engine is the command surface the controller drives.
type Engine interface {
	MoveBallToBoard(id zertz.BallID, to zertz.QR) bool
	MoveBallToPile(id zertz.BallID, to zertz.PileID) bool
	RemoveCell(at zertz.QR) bool
	Undo() bool
}

// Stats counts the outcomes of resolved actions.
type Stats struct {
	Applied      int // Moves and removals that succeeded
	Rejected     int // Resolved actions that failed
	Undone       int // Successful undos
	CellsRemoved int // Successful cell removals
}

// Controller pairs a source click with a destination click.
type Controller struct {
	engine  Engine
	src     Target
	pending bool
	stats   Stats
}

// New creates a controller driving the given engine.
func New(engine Engine) *Controller {
	return &Controller{engine: engine}
}

// Click handles one click.
// Undo is applied immediately and drops any pending selection. Any other
// first click becomes the pending source; the second click resolves the
// action and clears the selection whatever the outcome.
func (c *Controller) Click(t Target) Result {
	if t.Kind == KindUndo {
		c.Cancel()
		if c.engine.Undo() {
			c.stats.Undone++
			return Success
		}
		return Fail
	}

	if !c.pending {
		c.src = t
		c.pending = true
		return Selected
	}

	src := c.src
	c.Cancel()

	result := c.apply(src, t)
	if result == Success {
		c.stats.Applied++
	} else {
		c.stats.Rejected++
	}
	return result
}

// Pending returns the pending source, if any.
func (c *Controller) Pending() (Target, bool) {
	return c.src, c.pending
}

// Cancel drops the pending selection.
func (c *Controller) Cancel() {
	c.src = Target{}
	c.pending = false
}

// Stats returns the outcome counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

func (c *Controller) apply(src, dst Target) Result {
	switch src.Kind {
	case KindBall:
		switch dst.Kind {
		case KindCell:
			return result(c.engine.MoveBallToBoard(src.Ball, dst.Cell))
		case KindPile:
			return result(c.engine.MoveBallToPile(src.Ball, dst.Pile))
		}
	case KindCell:
		// Clicking the same empty cell twice removes it.
		if dst.Kind == KindCell && dst.Cell == src.Cell {
			if c.engine.RemoveCell(src.Cell) {
				c.stats.CellsRemoved++
				return Success
			}
		}
	}
	return Fail
}

func result(ok bool) Result {
	if ok {
		return Success
	}
	return Fail
}
