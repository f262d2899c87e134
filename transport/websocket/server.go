package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type uGame interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)
	NewGame(ctx context.Context, sessionID string, dimension int) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.Session, entity.MoveResult, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger     *slog.Logger
	uGame      uGame
	cookieName string
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

// New builds the /ws handler. cookieName names the cookie that carries the session id
// of the board page, so a socket opened from that page drives the same game.
func New(logger *slog.Logger, uGame uGame, cookieName string) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		uGame:      uGame,
		cookieName: cookieName,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

// connection is a single socket together with the session id it was opened with.
type connection struct {
	ws        *websocket.Conn
	sessionID string
}

func (that *connection) send(msg *Message) error {
	if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer ws.Close()

	conn := &connection{ws: ws}
	if cookie, cookieErr := r.Cookie(that.cookieName); cookieErr == nil {
		conn.sessionID = cookie.Value
	}

	log.Info("WebSocket connection established", "sessionID", conn.sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go that.keepAlive(ctx, ws)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed", "sessionID", conn.sessionID)
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.ws.SetReadLimit(maxMessageSize)
	if err := conn.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendError(conn, actionError, "invalid message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(conn, actionError, fmt.Sprintf("unknown action %q", message.Action)); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to handle %s: %w", message.Action, err)
		}
	}
}

// keepAlive pings the peer so that a dead connection hits the read deadline.
func (that *Server) keepAlive(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				that.logger.Debug("failed to ping", "error", err)
				return
			}
		}
	}
}
