package gamemaster

import (
	"sync"

	"othello/game"
	"othello/meta"

	"github.com/pkg/errors"
)

var ErrGameOver = errors.New("game is over - no moves allowed")

// UpdateGetter returns the oldest undelivered update. ok is false when none
// is pending or the stream is closed.
type UpdateGetter func() (u Update, ok bool)

type Engine interface {
	Init() (game.Board, UpdateGetter)
	Play(cell int) error
	ToMove() game.Side
	State() State
}

// Update is an applied move, or a pass when Move.Cell is game.NoMove.
type Update struct {
	Move  game.Move
	Board game.Board
	Hash  game.StateHash
}

type State struct {
	Board  game.Board
	ToMove game.Side
	Over   bool
	Moves  int
}

type LocalEngine struct {
	mu       sync.Mutex
	start    game.Board
	board    game.Board
	toMove   game.Side
	moves    int
	gameOver bool
	updateCh chan Update
}

func NewLocalEngine(board game.Board) *LocalEngine {
	e := &LocalEngine{start: board}
	e.reset()
	return e
}

// Init restarts the game from the engine's starting board.
func (e *LocalEngine) Init() (game.Board, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()

	updateCh := e.updateCh
	return e.board, func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}
}

func (e *LocalEngine) reset() {
	e.board = e.start
	e.toMove = game.Black
	e.moves = 0
	e.gameOver = false
	// Every decision sends at most one update
	e.updateCh = make(chan Update, meta.MAX_TURNS)
	e.advance()
}

// Play applies cell for the side to move, then passes for any side that
// cannot move.
func (e *LocalEngine) Play(cell int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver {
		return ErrGameOver
	}

	next, err := e.board.Play(cell, e.toMove)
	if err != nil {
		return err
	}
	e.board = next
	e.moves++
	e.send(game.Move{Cell: cell, Side: e.toMove})

	e.toMove = e.toMove.Opponent()
	e.advance()
	return nil
}

// advance closes the stream at the end of the game or passes the turn when
// the side to move is stuck.
func (e *LocalEngine) advance() {
	if e.board.IsTerminal() {
		e.gameOver = true
		close(e.updateCh)
		return
	}
	if e.board.LegalMoves(e.toMove).Len() == 0 {
		e.send(game.Move{Cell: game.NoMove, Side: e.toMove})
		e.toMove = e.toMove.Opponent()
	}
}

func (e *LocalEngine) send(move game.Move) {
	select {
	case e.updateCh <- Update{Move: move, Board: e.board, Hash: e.board.Hash()}:
	default: // Nobody is reading; drop rather than block the game
	}
}

func (e *LocalEngine) ToMove() game.Side {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toMove
}

func (e *LocalEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Board: e.board, ToMove: e.toMove, Over: e.gameOver, Moves: e.moves}
}
