package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, ok := decodePayload(msg)
	if !ok {
		return that.sendError(conn, msg.Action, "invalid payload")
	}

	session, err := that.uGame.GetOrCreateSession(ctx, conn.resolve(payloadReq))
	if err != nil {
		log.Error("failed to get session", "error", err)
		return that.sendError(conn, msg.Action, "failed to get the game")
	}

	conn.sessionID = session.ID

	return that.sendGame(conn, msg.Action, session, nil, "")
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, ok := decodePayload(msg)
	if !ok {
		return that.sendError(conn, msg.Action, "invalid payload")
	}

	session, err := that.uGame.NewGame(ctx, conn.resolve(payloadReq), payloadReq.Dimension)
	if errors.Is(err, apperror.ErrInvalidDimension) || errors.Is(err, apperror.ErrDimensionTooLarge) {
		return that.sendError(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to start a new game", "error", err)
		return that.sendError(conn, msg.Action, "failed to start a new game")
	}

	conn.sessionID = session.ID

	log.Info("new game started", "sessionID", session.ID, "dimension", session.Game.Dimension)

	return that.sendGame(conn, msg.Action, session, nil, "")
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, ok := decodePayload(msg)
	if !ok {
		return that.sendError(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendError(conn, msg.Action, "row and col are required")
	}

	sessionID := conn.resolve(payloadReq)
	if sessionID == "" {
		return that.sendError(conn, msg.Action, apperror.ErrSessionNotFound.Error())
	}

	session, result, err := that.uGame.MakeTurn(ctx, sessionID, *payloadReq.Row, *payloadReq.Col)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendError(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)
		return that.sendError(conn, msg.Action, "failed to make turn")
	}

	conn.sessionID = session.ID

	accepted := result.Accepted()
	reason := ""
	if result.Rejected() {
		reason = result.Err.Error()
	}

	return that.sendGame(conn, msg.Action, session, &accepted, reason)
}

// resolve picks the session id from the payload, falling back to the connection's one.
func (that *connection) resolve(payload RequestPayload) string {
	if payload.SessionID != "" {
		return payload.SessionID
	}

	return that.sessionID
}

func decodePayload(msg *Message) (RequestPayload, bool) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, true
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, false
	}

	return payload, true
}

func (that *Server) sendGame(conn *connection, action string, session *entity.Session, accepted *bool, reason string) error {
	return that.sendMessage(conn, action, ResponsePayload{
		SessionID: session.ID,
		Game:      session.Game,
		Accepted:  accepted,
		Error:     reason,
	})
}

func (that *Server) sendError(conn *connection, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	msg, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return conn.send(msg)
}
