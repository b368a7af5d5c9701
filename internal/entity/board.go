package entity

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

// Cell is the occupancy of a single board field.
type Cell int

const (
	CellEmpty Cell = iota
	CellHuman
	CellOpponent
)

const BoardSize = 9

// Wire symbols of a cell.
const (
	SymbolEmpty    = '0'
	SymbolHuman    = 'X'
	SymbolOpponent = 'O'
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Cell) Symbol() byte {
	switch that {
	case CellHuman:
		return SymbolHuman
	case CellOpponent:
		return SymbolOpponent
	default:
		return SymbolEmpty
	}
}

func (that Cell) String() string {
	return string(that.Symbol())
}

// Board is a 3x3 grid stored row-major: 0,1,2 / 3,4,5 / 6,7,8.
type Board [BoardSize]Cell

// NewBoard returns a board with every cell empty.
func NewBoard() Board {
	return Board{}
}

// ParseBoard decodes the 9-character wire encoding produced by Board.String.
func ParseBoard(marks string) (Board, error) {
	var board Board

	if len(marks) != BoardSize {
		return board, fmt.Errorf("%w: board encoding must have %d cells, got %d", apperror.ErrInvalidRequest, BoardSize, len(marks))
	}

	for i := 0; i < BoardSize; i++ {
		switch marks[i] {
		case SymbolEmpty:
			board[i] = CellEmpty
		case SymbolHuman:
			board[i] = CellHuman
		case SymbolOpponent:
			board[i] = CellOpponent
		default:
			return Board{}, fmt.Errorf("%w: unknown cell symbol %q at %d", apperror.ErrInvalidRequest, marks[i], i)
		}
	}

	return board, nil
}

func validPosition(position int) bool {
	return position >= 0 && position < BoardSize
}

func (that *Board) IsOccupied(position int) (bool, error) {
	if !validPosition(position) {
		return false, fmt.Errorf("%w: %d", apperror.ErrInvalidPosition, position)
	}

	return that[position] != CellEmpty, nil
}

// Place marks an empty cell. It never overwrites an occupied one.
func (that *Board) Place(position int, who Cell) error {
	if !validPosition(position) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPosition, position)
	}

	if who == CellEmpty {
		return fmt.Errorf("%w: cannot place an empty mark", apperror.ErrInvalidRequest)
	}

	if that[position] != CellEmpty {
		return fmt.Errorf("%w: field %d", apperror.ErrCellOccupied, position)
	}

	that[position] = who

	return nil
}

// Winner returns the occupant of a completed line, if any.
func (that *Board) Winner() (Cell, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != CellEmpty && a == b && b == c {
			return a, true
		}
	}

	return CellEmpty, false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == CellEmpty {
			return false
		}
	}

	return true
}

func (that *Board) IsTie() bool {
	_, won := that.Winner()

	return that.IsFull() && !won
}

// EmptyCells returns the positions still free, in ascending order.
func (that *Board) EmptyCells() []int {
	positions := lo.Range(BoardSize)

	return lo.Filter(positions, func(position int, _ int) bool {
		return that[position] == CellEmpty
	})
}

func (that *Board) Snapshot() Board {
	return *that
}

func (that Board) String() string {
	var sb strings.Builder

	sb.Grow(BoardSize)
	for _, cell := range that {
		sb.WriteByte(cell.Symbol())
	}

	return sb.String()
}

func (that Board) MarshalJSON() ([]byte, error) {
	return []byte(`"` + that.String() + `"`), nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: board must be a json string", apperror.ErrInvalidRequest)
	}

	board, err := ParseBoard(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}

	*that = board

	return nil
}
