package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(id string) *entity.Session {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	return &entity.Session{
		ID: id,
		Game: &entity.Game{
			ID:        id,
			Dimension: 3,
			Board: entity.Board{
				{entity.PlayerX, entity.MarkEmpty, entity.MarkEmpty},
				{entity.MarkEmpty, entity.PlayerO, entity.MarkEmpty},
				{entity.MarkEmpty, entity.MarkEmpty, entity.MarkEmpty},
			},
			Turn:    entity.PlayerX,
			Outcome: entity.OutcomeInProgress,
			Moves:   2,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

	// Given: a session with a game in progress
	session := newTestSession("123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, 0)

		// Given: a stored session
		session := newTestSession("123")

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedSession, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved session
		require.NoError(t, err)
		require.Equal(t, session, retrievedSession)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrievedSession, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrievedSession)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, 0)

		// Given: a stored session
		session := newTestSession("123")

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
