package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

// Outcome is the state of a game with respect to its result.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeHumanWin
	OutcomeOpponentWin
	OutcomeTie
)

const StartDescription = "Start"

func (that Outcome) String() string {
	switch that {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeHumanWin:
		return "human_win"
	case OutcomeOpponentWin:
		return "opponent_win"
	case OutcomeTie:
		return "tie"
	default:
		return "unknown"
	}
}

func (that Outcome) IsTerminal() bool {
	return that != OutcomeInProgress
}

// ScoreResult maps a terminal outcome onto the result recorded for the human player.
func (that Outcome) ScoreResult() (Result, bool) {
	switch that {
	case OutcomeHumanWin:
		return ResultWon, true
	case OutcomeOpponentWin:
		return ResultLost, true
	case OutcomeTie:
		return ResultTied, true
	default:
		return "", false
	}
}

// MoveRecord is one entry of the append-only game log.
type MoveRecord struct {
	Board       string `json:"board"`
	Description string `json:"description"`
}

type Game struct {
	ID        string       `json:"id"`
	PlayerID  string       `json:"player_id"`
	Board     Board        `json:"board"`
	Outcome   Outcome      `json:"outcome"`
	History   []MoveRecord `json:"history"`
	Cancelled bool         `json:"cancelled"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewGame(id, playerID string, now time.Time) *Game {
	board := NewBoard()

	return &Game{
		ID:       id,
		PlayerID: playerID,
		Board:    board,
		Outcome:  OutcomeInProgress,
		History: []MoveRecord{
			{Board: board.String(), Description: StartDescription},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOver reports whether the game accepts no more moves.
func (that *Game) IsOver() bool {
	return that.Outcome.IsTerminal() || that.Cancelled
}

func (that *Game) IsActive() bool {
	return !that.IsOver()
}

func (that *Game) AppendHistory(description string) {
	that.History = append(that.History, MoveRecord{
		Board:       that.Board.String(),
		Description: description,
	})
}

// Cancel abandons a game that has not finished yet.
func (that *Game) Cancel(now time.Time) error {
	if that.Outcome.IsTerminal() {
		return fmt.Errorf("%w: game %s is already completed", apperror.ErrGameAlreadyOver, that.ID)
	}

	that.Cancelled = true
	that.UpdatedAt = now

	return nil
}
