package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

func (that *Engine) Dimension() int {
	return that.dimension
}

// Board returns a copy of the cells.
func (that *Engine) Board() entity.Board {
	return that.board.Clone()
}

// Cell returns the mark at row, col, or MarkEmpty when the coordinates are off the board.
func (that *Engine) Cell(row, col int) entity.Mark {
	if !that.inBounds(row, col) {
		return entity.MarkEmpty
	}
	return that.board[row][col]
}

func (that *Engine) Turn() entity.Mark {
	return that.turn
}

func (that *Engine) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Engine) Finished() bool {
	return that.outcome.IsFinished()
}

func (that *Engine) Winner() entity.Mark {
	return that.outcome.Winner()
}

// LastRejection is the reason of the latest rejected move, nil once a move is accepted.
func (that *Engine) LastRejection() error {
	return that.lastRejection
}

// Message is the status line shown above the board.
func (that *Engine) Message() string {
	switch that.outcome {
	case entity.OutcomeXWon, entity.OutcomeOWon:
		return fmt.Sprintf("%s won!", that.outcome.Winner())
	case entity.OutcomeDraw:
		return "Draw!"
	case entity.OutcomeInProgress:
		if that.moves == 0 {
			return fmt.Sprintf("Player %s moves first!", that.turn)
		}
		return fmt.Sprintf("It's player %s's turn!", that.turn)
	default:
		return "Game is not started"
	}
}

// Snapshot captures the engine state under the given id.
func (that *Engine) Snapshot(id string) *entity.Game {
	game := &entity.Game{
		ID:        id,
		Dimension: that.dimension,
		Board:     that.board.Clone(),
		Turn:      that.turn,
		Outcome:   that.outcome,
		Moves:     that.moves,
		Message:   that.Message(),
	}

	if that.lastRejection != nil {
		game.LastError = that.lastRejection.Error()
	}

	return game
}

// Restore builds an engine from a snapshot taken by Snapshot.
func Restore(game *entity.Game) (*Engine, error) {
	if game == nil {
		return nil, fmt.Errorf("%w: empty snapshot", apperror.ErrCorruptedGame)
	}

	if err := game.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		dimension: game.Dimension,
		board:     game.Board.Clone(),
		turn:      game.Turn,
		outcome:   game.Outcome,
		moves:     game.Moves,
	}

	if game.LastError != "" {
		engine.lastRejection = restoreRejection(game.LastError)
	}

	return engine, nil
}

// restoreRejection - maps a stored message back onto its sentinel, keeping the details.
func restoreRejection(message string) error {
	for _, reason := range []error{
		apperror.ErrGameFinished,
		apperror.ErrOutOfBounds,
		apperror.ErrCellOccupied,
		apperror.ErrNotStarted,
	} {
		if message == reason.Error() {
			return reason
		}

		if details, ok := strings.CutPrefix(message, reason.Error()+":"); ok {
			return fmt.Errorf("%w:%s", reason, details)
		}
	}

	return errors.New(message)
}
