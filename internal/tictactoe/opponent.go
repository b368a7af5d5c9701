package tictactoe

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Opponent picks the automated reply for a board that still has free cells.
type Opponent interface {
	ChooseCell(board entity.Board) (int, error)
}

// RandomOpponent samples uniformly from the empty cells of the board.
type RandomOpponent struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomOpponent(src rand.Source) *RandomOpponent {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	return &RandomOpponent{
		rnd: rand.New(src), //nolint: gosec // move selection is not security sensitive
	}
}

func (that *RandomOpponent) ChooseCell(board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableCells
	}

	that.mu.Lock()
	idx := that.rnd.Intn(len(availableCells))
	that.mu.Unlock()

	return availableCells[idx], nil
}
