package server

import (
	"othello/game"
	"othello/gamemaster"
)

// FindMoveRequest asks an agent for a move on an arbitrary position.
type FindMoveRequest struct {
	Layout   string `json:"layout" binding:"required,layout"`
	Side     string `json:"side" binding:"required,side"`
	Strategy string `json:"strategy" binding:"required,oneof=random minimax alpha-beta"`
	Seed     uint64 `json:"seed"`
	Depth    int    `json:"depth" binding:"depth"`
}

type FindMoveResponse struct {
	Move  int `json:"move"` // -1 when the side must pass
	Nodes int `json:"nodes"`
}

type NewGameRequest struct {
	Layout string `json:"layout" binding:"omitempty,layout"`
}

type PlayRequest struct {
	Cell int `json:"cell" binding:"required,min=11,max=88"`
}

type GameState struct {
	ID         string `json:"id"`
	Layout     string `json:"layout"`
	ToMove     string `json:"to_move"`
	LegalMoves []int  `json:"legal_moves"`
	Black      int    `json:"black"`
	White      int    `json:"white"`
	Moves      int    `json:"moves"`
	Over       bool   `json:"over"`
	Winner     string `json:"winner,omitempty"`
}

// MoveUpdate is one applied move, or a pass when Cell is -1.
type MoveUpdate struct {
	Cell   int    `json:"cell"`
	Side   string `json:"side"`
	Layout string `json:"layout"`
	Hash   uint64 `json:"hash"`
}

type UpdatesResponse struct {
	ID      string       `json:"id"`
	Updates []MoveUpdate `json:"updates"`
	ToMove  string       `json:"to_move"`
	Over    bool         `json:"over"`
}

func newMoveUpdate(u gamemaster.Update) MoveUpdate {
	return MoveUpdate{
		Cell:   u.Move.Cell,
		Side:   u.Move.Side.String(),
		Layout: u.Board.Layout(),
		Hash:   uint64(u.Hash),
	}
}

func newGameState(id string, s gamemaster.State) GameState {
	legal := []int{}
	if !s.Over {
		legal = append(legal, s.Board.LegalMoves(s.ToMove).Cells()...)
	}
	state := GameState{
		ID:         id,
		Layout:     s.Board.Layout(),
		ToMove:     s.ToMove.String(),
		LegalMoves: legal,
		Black:      s.Board.Discs(game.Black),
		White:      s.Board.Discs(game.White),
		Moves:      s.Moves,
		Over:       s.Over,
	}
	if winner, ok := s.Board.Winner(); s.Over && ok {
		state.Winner = winner.String()
	}
	return state
}
