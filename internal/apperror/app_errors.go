package apperror

import "errors"

// Move rejections. AttemptMove reports exactly one of them per rejected move.
var (
	ErrGameFinished = errors.New("game is already finished")
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNotStarted   = errors.New("game is not started")
)

var (
	ErrInvalidDimension  = errors.New("board dimension must be positive")
	ErrDimensionTooLarge = errors.New("board dimension is too large")
	ErrCorruptedGame     = errors.New("game snapshot is corrupted")
	ErrSessionNotFound   = errors.New("session not found")
)
