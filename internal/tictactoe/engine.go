package tictactoe

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	msgIllegalField  = "This move is illegal. Please choose a field from 0 to 8"
	msgFieldMarked   = "This field is already marked %s"
	msgAlreadyOver   = "Game already over! Marks: %s"
	msgHumanWin      = "You Win %s!"
	msgOpponentWin   = "You Lose %s!"
	msgTie           = "It's a Tie %s!"
	noteHumanWin     = "You win!"
	noteOpponentWin  = "You lose!"
	noteTie          = "It's a tie!"
	humanMarksFmt    = "Human marks field %d"
	opponentMarksFmt = "Opponent marks field %d"
)

// Result is what a single call to ApplyHumanMove produced.
type Result struct {
	Outcome entity.Outcome
	Message string
	Board   entity.Board
	// Rejected is set when the move was illegal and nothing changed.
	Rejected bool
	// Score is non-nil exactly when this call ended the game.
	Score *entity.Score
}

type Option func(*Engine)

// WithClock overrides the time source used for score dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine sequences one human half-move and the opponent's reply. It holds no
// per-game state and performs no locking: callers serialize access per game.
type Engine struct {
	opponent Opponent
	now      func() time.Time
}

func NewEngine(opponent Opponent, opts ...Option) *Engine {
	engine := &Engine{
		opponent: opponent,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ApplyHumanMove places the human mark at position and, unless that ends the
// game, lets the opponent answer.
func (that *Engine) ApplyHumanMove(game *entity.Game, position int) (*Result, error) {
	if game.IsOver() {
		return that.result(game, fmt.Sprintf(msgAlreadyOver, game.Board)), apperror.ErrGameAlreadyOver
	}

	if rejection, ok := validateMove(&game.Board, position); !ok {
		result := that.result(game, rejection)
		result.Rejected = true

		return result, nil
	}

	if err := game.Board.Place(position, entity.CellHuman); err != nil {
		return nil, fmt.Errorf("failed to place human mark: %w", err)
	}
	game.AppendHistory(fmt.Sprintf(humanMarksFmt, position))

	if result, finished := that.settle(game); finished {
		return result, nil
	}

	cell, err := that.opponent.ChooseCell(game.Board.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("opponent failed to choose a cell: %w", err)
	}

	if err = game.Board.Place(cell, entity.CellOpponent); err != nil {
		return nil, fmt.Errorf("failed to place opponent mark: %w", err)
	}
	game.AppendHistory(fmt.Sprintf(opponentMarksFmt, cell))

	if result, finished := that.settle(game); finished {
		return result, nil
	}

	game.UpdatedAt = that.now()

	return that.result(game, game.Board.String()), nil
}

// validateMove returns the rejection message for an illegal position.
func validateMove(board *entity.Board, position int) (string, bool) {
	occupied, err := board.IsOccupied(position)
	if errors.Is(err, apperror.ErrInvalidPosition) {
		return msgIllegalField, false
	}

	if occupied {
		return fmt.Sprintf(msgFieldMarked, board[position]), false
	}

	return "", true
}

// settle checks the board after a placement and finishes the game when a line
// is complete or the board is full.
func (that *Engine) settle(game *entity.Game) (*Result, bool) {
	var (
		outcome entity.Outcome
		note    string
		message string
	)

	winner, won := game.Board.Winner()

	switch {
	case won && winner == entity.CellHuman:
		outcome, note, message = entity.OutcomeHumanWin, noteHumanWin, msgHumanWin
	case won && winner == entity.CellOpponent:
		outcome, note, message = entity.OutcomeOpponentWin, noteOpponentWin, msgOpponentWin
	case game.Board.IsFull():
		outcome, note, message = entity.OutcomeTie, noteTie, msgTie
	default:
		return nil, false
	}

	now := that.now()

	game.Outcome = outcome
	game.UpdatedAt = now
	game.AppendHistory(note)

	result := that.result(game, fmt.Sprintf(message, game.Board))
	if scoreResult, ok := outcome.ScoreResult(); ok {
		result.Score = entity.NewScore(game.ID, game.PlayerID, now, scoreResult)
	}

	return result, true
}

func (that *Engine) result(game *entity.Game, message string) *Result {
	return &Result{
		Outcome: game.Outcome,
		Message: message,
		Board:   game.Board.Snapshot(),
	}
}
