package models

import (
	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/repository"
	"github.com/lk16/shobu/internal/shobu"
)

// BoardView is one board as sent to clients. Stones is the 16 character board string.
type BoardView struct {
	Color  string `json:"color"`
	Stones string `json:"stones"`
}

// GameView is a game session as sent to clients.
type GameView struct {
	ID       uuid.UUID   `json:"id"`
	State    string      `json:"state"`
	Turn     string      `json:"turn"`
	Terminal bool        `json:"terminal"`
	Winner   *string     `json:"winner"`
	Boards   []BoardView `json:"boards"`
	History  []string    `json:"history"`
}

// NewGameView creates a GameView from a game and its move history.
func NewGameView(id uuid.UUID, game *shobu.Game, history []string) GameView {
	boards := make([]BoardView, 0, shobu.BoardCount)
	for _, board := range game.Boards() {
		boards = append(boards, BoardView{
			Color:  board.Color.String(),
			Stones: board.Board.String(),
		})
	}

	if history == nil {
		history = []string{}
	}

	view := GameView{
		ID:       id,
		State:    game.String(),
		Turn:     game.Turn().String(),
		Terminal: game.IsTerminal(),
		Boards:   boards,
		History:  history,
	}

	if winner, ok := game.Winner(); ok {
		name := winner.String()
		view.Winner = &name
	}

	return view
}

// NewGameViewFromSnapshot creates a GameView from a stored session.
func NewGameViewFromSnapshot(snapshot repository.GameSnapshot) GameView {
	return NewGameView(snapshot.ID, snapshot.Game, snapshot.History)
}
