package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("Opponent switches between players", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
		assert.Equal(t, MarkEmpty, MarkEmpty.Opponent())
	})

	t.Run("String renders empty cells as dots", func(t *testing.T) {
		assert.Equal(t, ".", MarkEmpty.String())
		assert.Equal(t, "X", PlayerX.String())
	})
}

func TestOutcome(t *testing.T) {
	t.Run("IsFinished is false only while in progress", func(t *testing.T) {
		assert.False(t, OutcomeInProgress.IsFinished())
		assert.True(t, OutcomeDraw.IsFinished())
		assert.True(t, OutcomeXWon.IsFinished())
		assert.True(t, OutcomeOWon.IsFinished())
		assert.False(t, Outcome("").IsFinished())
	})

	t.Run("Winner and WonBy agree", func(t *testing.T) {
		assert.Equal(t, OutcomeXWon, WonBy(PlayerX))
		assert.Equal(t, OutcomeOWon, WonBy(PlayerO))
		assert.Equal(t, PlayerX, OutcomeXWon.Winner())
		assert.Equal(t, PlayerO, OutcomeOWon.Winner())
		assert.Equal(t, MarkEmpty, OutcomeDraw.Winner())
	})
}

func TestMoveResult(t *testing.T) {
	accepted := Accepted(OutcomeDraw)
	assert.True(t, accepted.Accepted())
	assert.False(t, accepted.Rejected())

	rejected := Rejected(OutcomeInProgress, apperror.ErrOutOfBounds)
	assert.True(t, rejected.Rejected())
	assert.ErrorIs(t, rejected.Err, apperror.ErrOutOfBounds)
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one mark
	board := NewBoard(2)
	board[0][1] = PlayerX

	// When: the board is cloned and the clone is changed
	clone := board.Clone()
	clone[0][1] = PlayerO

	// Then: the source board keeps its mark
	assert.Equal(t, PlayerX, board[0][1])
}

func TestGame_Validate(t *testing.T) {
	valid := func() *Game {
		return &Game{
			Dimension: 2,
			Board:     Board{{PlayerX, MarkEmpty}, {PlayerO, MarkEmpty}},
			Turn:      PlayerX,
			Outcome:   OutcomeInProgress,
			Moves:     2,
		}
	}

	t.Run("Returns nil for a reachable state", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		modify func(game *Game)
	}{
		{name: "zero dimension", modify: func(game *Game) { game.Dimension = 0 }},
		{name: "missing row", modify: func(game *Game) { game.Board = game.Board[:1] }},
		{name: "short row", modify: func(game *Game) { game.Board[1] = game.Board[1][:1] }},
		{name: "unknown mark", modify: func(game *Game) { game.Board[0][1] = "Z" }},
		{name: "moves mismatch", modify: func(game *Game) { game.Moves = 3 }},
		{name: "empty turn", modify: func(game *Game) { game.Turn = MarkEmpty }},
		{name: "unknown outcome", modify: func(game *Game) { game.Outcome = "paused" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a snapshot broken in one place
			game := valid()
			tt.modify(game)

			// When: it is validated
			err := game.Validate()

			// Then: it is reported as corrupted
			require.ErrorIs(t, err, apperror.ErrCorruptedGame)
		})
	}
}
