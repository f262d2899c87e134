package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

// Mark is the content of a single cell, or the player who owns a turn.
type Mark string

const (
	MarkEmpty Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the other player. MarkEmpty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return MarkEmpty
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) String() string {
	if that == MarkEmpty {
		return "."
	}
	return string(that)
}

// Outcome is the status of a game. Exactly one holds at any time.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeDraw       Outcome = "draw"
	OutcomeXWon       Outcome = "x_won"
	OutcomeOWon       Outcome = "o_won"
)

// WonBy returns the winning outcome for a player.
func WonBy(player Mark) Outcome {
	if player == PlayerO {
		return OutcomeOWon
	}
	return OutcomeXWon
}

func (that Outcome) IsFinished() bool {
	return that == OutcomeDraw || that == OutcomeXWon || that == OutcomeOWon
}

func (that Outcome) IsValid() bool {
	return that == OutcomeInProgress || that.IsFinished()
}

// Winner returns the mark of the winning player, or MarkEmpty for a draw or an ongoing game.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeXWon:
		return PlayerX
	case OutcomeOWon:
		return PlayerO
	default:
		return MarkEmpty
	}
}

// Board is a square grid stored row by row.
type Board [][]Mark

// NewBoard allocates an empty dimension x dimension board.
func NewBoard(dimension int) Board {
	board := make(Board, dimension)
	for row := range board {
		board[row] = make([]Mark, dimension)
	}

	return board
}

// Clone returns a deep copy, so callers can not reach the engine's cells.
func (that Board) Clone() Board {
	board := make(Board, len(that))
	for row := range that {
		board[row] = append([]Mark(nil), that[row]...)
	}

	return board
}

// MoveResult is returned by every move attempt. Err is nil for an accepted move,
// otherwise it wraps one of the apperror rejections and Outcome is the unchanged outcome.
type MoveResult struct {
	Outcome Outcome
	Err     error
}

func Accepted(outcome Outcome) MoveResult {
	return MoveResult{Outcome: outcome}
}

func Rejected(outcome Outcome, reason error) MoveResult {
	return MoveResult{Outcome: outcome, Err: reason}
}

func (that MoveResult) Accepted() bool {
	return that.Err == nil
}

func (that MoveResult) Rejected() bool {
	return that.Err != nil
}

// Game is the serializable snapshot of an engine.
type Game struct {
	ID        string  `json:"id"`
	Dimension int     `json:"dimension"`
	Board     Board   `json:"board"`
	Turn      Mark    `json:"turn"`
	Outcome   Outcome `json:"outcome"`
	LastError string  `json:"last_error,omitempty"`
	Moves     int     `json:"moves"`
	Message   string  `json:"message,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}

func (that *Game) IsOngoing() bool {
	return that.Outcome == OutcomeInProgress
}

// Validate checks that a snapshot describes a reachable engine state.
func (that *Game) Validate() error {
	if that.Dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", apperror.ErrCorruptedGame, that.Dimension)
	}

	if len(that.Board) != that.Dimension {
		return fmt.Errorf("%w: %d rows for dimension %d", apperror.ErrCorruptedGame, len(that.Board), that.Dimension)
	}

	marked := 0
	for row, cells := range that.Board {
		if len(cells) != that.Dimension {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrCorruptedGame, row, len(cells))
		}

		for col, cell := range cells {
			switch {
			case cell.IsPlayer():
				marked++
			case cell != MarkEmpty:
				return fmt.Errorf("%w: unknown mark %q at %d,%d", apperror.ErrCorruptedGame, cell, row, col)
			}
		}
	}

	if marked != that.Moves {
		return fmt.Errorf("%w: %d marked cells, %d moves", apperror.ErrCorruptedGame, marked, that.Moves)
	}

	if !that.Turn.IsPlayer() {
		return fmt.Errorf("%w: turn %q", apperror.ErrCorruptedGame, that.Turn)
	}

	if !that.Outcome.IsValid() {
		return fmt.Errorf("%w: outcome %q", apperror.ErrCorruptedGame, that.Outcome)
	}

	return nil
}
