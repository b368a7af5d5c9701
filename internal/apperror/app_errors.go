package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameAlreadyOver   = errors.New("game is already over")
	ErrGameLocked        = errors.New("game is locked by another move")
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNoAvailableCells  = errors.New("no available cells")
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrGameNotFound = fmt.Errorf("game %w", ErrNotFound)
)
