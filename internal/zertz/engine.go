package zertz

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Rejection reasons. They are logged, never returned across the engine
// boundary: commands only report success or failure.
var (
	errUnknownBall     = errors.New("unknown ball")
	errUnknownPile     = errors.New("unknown pile")
	errOutOfRange      = errors.New("coordinate outside the board")
	errCellAbsent      = errors.New("cell is absent")
	errCellOccupied    = errors.New("cell is occupied")
	errAlreadyInPile   = errors.New("ball already in that pile")
	errInitialSnapshot = errors.New("only the initial snapshot remains")
)

// Engine owns the history of snapshots.
// Every command validates against the latest snapshot and either appends a
// new one or leaves the history untouched. Engine is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	history []GameState
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	setup  Setup
	logger *log.Logger
}

// WithSetup selects the initial position. Defaults to StandardSetup.
func WithSetup(s Setup) Option {
	return func(o *engineOptions) {
		o.setup = s
	}
}

// WithLogger sets the logger used to report rejected commands at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// New creates an engine whose history holds only the initial snapshot.
// Returns an error if the setup is invalid.
func New(opts ...Option) (*Engine, error) {
	o := engineOptions{setup: StandardSetup()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.setup.Validate(); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Engine{
		history: []GameState{o.setup.initialState()},
		logger:  logger,
	}, nil
}

// Latest returns the most recent snapshot.
func (e *Engine) Latest() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest()
}

// Depth returns the number of snapshots in the history (at least 1).
func (e *Engine) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// MoveBallToBoard moves a ball from a pile or another cell onto the cell at to.
// Fails if the destination is absent or occupied.
func (e *Engine) MoveBallToBoard(id BallID, to QR) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.latest()
	if err := checkMoveToBoard(cur, id, to); err != nil {
		return e.reject("move to board", err, "ball", id, "to", to)
	}

	next := cur.Clone()
	next.detach(id)
	next.board.cell(to).place(id)
	next.balls[id].pos = OnBoard{At: to}

	e.publish(next)
	return true
}

// MoveBallToPile moves a ball from the board or another pile to the end of pile to.
// Fails if the ball is already in that pile.
func (e *Engine) MoveBallToPile(id BallID, to PileID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.latest()
	if err := checkMoveToPile(cur, id, to); err != nil {
		return e.reject("move to pile", err, "ball", id, "pile", to)
	}

	next := cur.Clone()
	next.detach(id)
	// checkMoveToPile guarantees the ball is not in the destination.
	_ = next.piles[to].Add(id)
	next.balls[id].pos = InPile{Pile: to}

	e.publish(next)
	return true
}

// RemoveCell marks a present, empty cell as absent.
func (e *Engine) RemoveCell(at QR) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.latest()
	if err := checkRemoveCell(cur, at); err != nil {
		return e.reject("remove cell", err, "cell", at)
	}

	next := cur.Clone()
	next.board.cell(at).Present = false

	e.publish(next)
	return true
}

// Undo drops the latest snapshot.
// Fails if only the initial snapshot remains.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.history)
	if n == 1 {
		return e.reject("undo", errInitialSnapshot)
	}

	e.history[n-1] = GameState{}
	e.history = e.history[:n-1]
	return true
}

func (e *Engine) latest() GameState {
	return e.history[len(e.history)-1]
}

func (e *Engine) publish(s GameState) {
	e.history = append(e.history, s)
}

func (e *Engine) reject(op string, err error, keyvals ...any) bool {
	e.logger.Debug("command rejected", append([]any{"op", op, "reason", err}, keyvals...)...)
	return false
}

func checkMoveToBoard(s GameState, id BallID, to QR) error {
	if !s.HasBall(id) {
		return errUnknownBall
	}
	return checkEmptyCell(s, to)
}

func checkMoveToPile(s GameState, id BallID, to PileID) error {
	if !s.HasBall(id) {
		return errUnknownBall
	}
	if !to.Valid() {
		return errUnknownPile
	}
	if pile, ok := s.balls[id].Pile(); ok && pile == to {
		return errAlreadyInPile
	}
	return nil
}

func checkRemoveCell(s GameState, at QR) error {
	return checkEmptyCell(s, at)
}

func checkEmptyCell(s GameState, at QR) error {
	if !s.board.InBounds(at) {
		return errOutOfRange
	}
	cell := s.board.Cell(at)
	if !cell.Present {
		return errCellAbsent
	}
	if _, occupied := cell.Occupant(); occupied {
		return errCellOccupied
	}
	return nil
}
