package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

// Engine owns the state of a single N x N game. It is not safe for concurrent use.
type Engine struct {
	dimension     int
	board         entity.Board
	turn          entity.Mark
	outcome       entity.Outcome
	moves         int
	lastRejection error
}

// NewEngine returns an engine reset to an empty board of the given dimension.
func NewEngine(dimension int) (*Engine, error) {
	engine := &Engine{}
	if err := engine.Reset(dimension); err != nil {
		return nil, err
	}

	return engine, nil
}

// Reset starts a new game on an empty dimension x dimension board with X to move.
// A non-positive dimension is refused and leaves the current game untouched.
func (that *Engine) Reset(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDimension, dimension)
	}

	that.dimension = dimension
	that.board = entity.NewBoard(dimension)
	that.turn = entity.PlayerX
	that.outcome = entity.OutcomeInProgress
	that.moves = 0
	that.lastRejection = nil

	return nil
}

// AttemptMove places the current player's mark at row, col.
func (that *Engine) AttemptMove(row, col int) entity.MoveResult {
	if err := that.validateMove(row, col); err != nil {
		that.lastRejection = err
		return entity.Rejected(that.outcome, err)
	}

	mover := that.turn
	that.board[row][col] = mover
	that.moves++
	that.lastRejection = nil

	that.updateOutcome(mover, row, col)

	return entity.Accepted(that.outcome)
}

// validateMove - checks the preconditions in order, before anything is mutated.
func (that *Engine) validateMove(row, col int) error {
	if that.dimension == 0 {
		return apperror.ErrNotStarted
	}

	if that.outcome.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !that.inBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	if that.board[row][col] != entity.MarkEmpty {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	return nil
}

// updateOutcome - decides the game state after mover placed at row, col.
func (that *Engine) updateOutcome(mover entity.Mark, row, col int) {
	switch {
	case that.hasWon(mover, row, col):
		that.outcome = entity.WonBy(mover)
	// the game goes on until every cell is marked, even when nobody can win anymore
	case that.moves == that.dimension*that.dimension:
		that.outcome = entity.OutcomeDraw
	default:
		that.turn = mover.Opponent()
	}
}

// hasWon - only lines through the last placed cell can have been completed by this move.
func (that *Engine) hasWon(mover entity.Mark, row, col int) bool {
	return that.rowComplete(mover, row) ||
		that.colComplete(mover, col) ||
		(row == col && that.diagonalComplete(mover)) ||
		(row+col == that.dimension-1 && that.antiDiagonalComplete(mover))
}

func (that *Engine) rowComplete(mover entity.Mark, row int) bool {
	for col := range that.dimension {
		if that.board[row][col] != mover {
			return false
		}
	}
	return true
}

func (that *Engine) colComplete(mover entity.Mark, col int) bool {
	for row := range that.dimension {
		if that.board[row][col] != mover {
			return false
		}
	}
	return true
}

func (that *Engine) diagonalComplete(mover entity.Mark) bool {
	for i := range that.dimension {
		if that.board[i][i] != mover {
			return false
		}
	}
	return true
}

func (that *Engine) antiDiagonalComplete(mover entity.Mark) bool {
	for i := range that.dimension {
		if that.board[i][that.dimension-1-i] != mover {
			return false
		}
	}
	return true
}

func (that *Engine) inBounds(row, col int) bool {
	return row >= 0 && row < that.dimension && col >= 0 && col < that.dimension
}
