package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type Options struct {
	DefaultDimension int
	MaxDimension     int
}

// GameManager keeps one engine per presenter session. Every call restores the engine from
// the repository, applies a single operation and stores it back, one call at a time.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	options     Options
	now         func() time.Time

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, options Options) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		options:     options,
		now:         time.Now,
	}
}

func (that *GameManager) DefaultDimension() int {
	return that.options.DefaultDimension
}

// GetOrCreateSession returns the session with the given id, or a new session with a
// default-sized game when the id is empty or unknown.
func (that *GameManager) GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getOrCreateSession(ctx, sessionID)
}

// NewGame resets the session's game to an empty board of the given dimension.
func (that *GameManager) NewGame(ctx context.Context, sessionID string, dimension int) (*entity.Session, error) {
	log := that.logger.With("method", "NewGame", "sessionID", sessionID)

	if dimension <= 0 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidDimension, dimension)
	}

	if dimension > that.options.MaxDimension {
		return nil, fmt.Errorf("%w: %d > %d", apperror.ErrDimensionTooLarge, dimension, that.options.MaxDimension)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	engine, err := tictactoe.Restore(session.Game)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if err = engine.Reset(dimension); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	if err = that.saveGame(ctx, session, engine); err != nil {
		return nil, err
	}

	log.Info("game reset", "dimension", dimension)

	return session, nil
}

// MakeTurn attempts a move for whoever's turn it is. A rejected move is not an error:
// it is reported in the MoveResult and recorded as the game's last error.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.Session, entity.MoveResult, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSessionByID(ctx, sessionID)
	if err != nil {
		return nil, entity.MoveResult{}, err
	}

	engine, err := tictactoe.Restore(session.Game)
	if err != nil {
		return nil, entity.MoveResult{}, fmt.Errorf("failed to restore game: %w", err)
	}

	mover := engine.Turn()
	result := engine.AttemptMove(row, col)

	if err = that.saveGame(ctx, session, engine); err != nil {
		return nil, entity.MoveResult{}, err
	}

	if result.Rejected() {
		log.Debug("move rejected", "row", row, "col", col, "reason", result.Err)
		return session, result, nil
	}

	log.Debug("move accepted", "player", mover, "row", row, "col", col, "outcome", result.Outcome)

	if result.Outcome.IsFinished() {
		log.Info("game finished", "outcome", result.Outcome, "moves", session.Game.Moves)
	}

	return session, result, nil
}

// EndSession forgets the session and its game.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", sessionID)

	return nil
}

func (that *GameManager) getOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if !pkg.IsSessionID(sessionID) {
		return that.createSession(ctx)
	}

	session, err := that.getSessionByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.createSession(ctx)
	}

	if err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) createSession(ctx context.Context) (*entity.Session, error) {
	engine, err := tictactoe.NewEngine(that.options.DefaultDimension)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	sessionID := pkg.GenerateNewSessionID()
	now := that.now()

	session := &entity.Session{
		ID:        sessionID,
		Game:      engine.Snapshot(sessionID),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", sessionID, "dimension", engine.Dimension())

	return session, nil
}

func (that *GameManager) getSessionByID(ctx context.Context, sessionID string) (*entity.Session, error) {
	if !pkg.IsSessionID(sessionID) {
		return nil, fmt.Errorf("failed to get session %q: %w", sessionID, apperror.ErrSessionNotFound)
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) saveGame(ctx context.Context, session *entity.Session, engine *tictactoe.Engine) error {
	session.Game = engine.Snapshot(session.ID)
	session.UpdatedAt = that.now()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
